package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"feedsng/internal/model"
	"feedsng/internal/service"
)

type FeedHandler struct {
	query   service.QueryService
	refresh service.RefreshService
}

type refreshResponse struct {
	FeedID      string   `json:"feedId"`
	ItemIDs     []string `json:"itemIds"`
	EntryErrors []string `json:"entryErrors,omitempty"`
}

func NewFeedHandler(query service.QueryService, refresh service.RefreshService) *FeedHandler {
	return &FeedHandler{query: query, refresh: refresh}
}

func (h *FeedHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/feeds", h.List)
	g.GET("/feeds/:id", h.Get)
	g.GET("/feeds/:id/count", h.Count)
	g.POST("/feeds/:id/refresh", h.Refresh)
	g.GET("/groups", h.Groups)
	g.POST("/sweep", h.Sweep)
}

// List returns the caller's feeds, direct and through groups.
// @Summary List feeds
// @Tags feeds
// @Produce json
// @Success 200 {array} feedResponse
// @Router /feeds [get]
func (h *FeedHandler) List(c echo.Context) error {
	uid, _ := userID(c)
	feeds, err := h.query.GetFeeds(c.Request().Context(), uid)
	if err != nil {
		return writeServiceError(c, err)
	}
	resp := make([]feedResponse, 0, len(feeds))
	for _, feed := range feeds {
		resp = append(resp, newFeedResponse(feed))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get returns one catalogued feed.
// @Summary Get a feed
// @Tags feeds
// @Produce json
// @Param id path string true "Feed ID"
// @Success 200 {object} feedResponse
// @Failure 404 {object} errorResponse
// @Router /feeds/{id} [get]
func (h *FeedHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id", model.NewFeedID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	feed, err := h.query.GetFeed(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, newFeedResponse(feed))
}

// Count returns how many items of a feed match the overlay filter.
// @Summary Count feed items
// @Tags feeds
// @Produce json
// @Param id path string true "Feed ID"
// @Param filter query string false "read, unread or saved"
// @Success 200 {object} countResponse
// @Router /feeds/{id}/count [get]
func (h *FeedHandler) Count(c echo.Context) error {
	id, err := parseIDParam(c, "id", model.NewFeedID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	filter, err := model.ParseFeedItemFilter(c.QueryParam("filter"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid filter"})
	}
	uid, _ := userID(c)
	count, err := h.query.CountFeedItems(c.Request().Context(), uid, id, filter)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, countResponse{Count: count})
}

// Refresh runs one ingestion cycle for a feed.
// @Summary Refresh a feed
// @Tags feeds
// @Produce json
// @Param id path string true "Feed ID"
// @Success 200 {object} refreshResponse
// @Failure 502 {object} errorResponse
// @Router /feeds/{id}/refresh [post]
func (h *FeedHandler) Refresh(c echo.Context) error {
	id, err := parseIDParam(c, "id", model.NewFeedID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	result, err := h.refresh.RefreshFeedByID(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	resp := refreshResponse{FeedID: formatID(result.FeedID), ItemIDs: formatIDs(result.ItemIDs)}
	for _, entryErr := range result.EntryErrors {
		resp.EntryErrors = append(resp.EntryErrors, entryErr.Error())
	}
	return c.JSON(http.StatusOK, resp)
}

// Groups returns the caller's groups with their feed ids.
// @Summary List groups
// @Tags groups
// @Produce json
// @Success 200 {array} groupResponse
// @Router /groups [get]
func (h *FeedHandler) Groups(c echo.Context) error {
	uid, _ := userID(c)
	groups, err := h.query.GetGroups(c.Request().Context(), uid)
	if err != nil {
		return writeServiceError(c, err)
	}
	resp := make([]groupResponse, 0, len(groups))
	for _, group := range groups {
		resp = append(resp, newGroupResponse(group))
	}
	return c.JSON(http.StatusOK, resp)
}

// Sweep refreshes every catalogued feed now. The sweep outlives a client
// that disconnects before it finishes.
// @Summary Run a sweep
// @Tags feeds
// @Produce json
// @Success 200 {object} service.SweepResult
// @Failure 409 {object} errorResponse
// @Router /sweep [post]
func (h *FeedHandler) Sweep(c echo.Context) error {
	result, err := h.refresh.RefreshAll(context.WithoutCancel(c.Request().Context()))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}
