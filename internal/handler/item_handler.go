package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"feedsng/internal/model"
	"feedsng/internal/service"
)

type ItemHandler struct {
	query  service.QueryService
	update service.UpdateService
}

type actionRequest struct {
	Action string `json:"action"`
}

func NewItemHandler(query service.QueryService, update service.UpdateService) *ItemHandler {
	return &ItemHandler{query: query, update: update}
}

func (h *ItemHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/items", h.List)
	g.GET("/items/ids", h.ListIDs)
	g.GET("/feeds/:id/items/:itemId", h.Get)
	g.POST("/items/:id/actions", h.UpdateItem)
	g.POST("/feeds/:id/actions", h.UpdateFeed)
	g.POST("/groups/:id/actions", h.UpdateGroup)
}

// List returns the caller's items, newest id first.
// @Summary List feed items
// @Tags items
// @Produce json
// @Param feedId query []string false "Feed IDs (repeated or comma separated)"
// @Param maxId query string false "Only items with id <= maxId"
// @Param sinceId query string false "Only items with id > sinceId"
// @Param withIds query []string false "Only these item IDs"
// @Param filter query string false "read, unread or saved"
// @Param limit query int false "Maximum number of items"
// @Success 200 {array} feedItemResponse
// @Failure 400 {object} errorResponse
// @Router /items [get]
func (h *ItemHandler) List(c echo.Context) error {
	q, err := parseItemsQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	uid, _ := userID(c)
	items, err := h.query.GetFeedItems(c.Request().Context(), uid, q)
	if err != nil {
		return writeServiceError(c, err)
	}
	resp := make([]feedItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, newFeedItemResponse(item))
	}
	return c.JSON(http.StatusOK, resp)
}

// ListIDs returns only the ids of matching items.
// @Summary List feed item ids
// @Tags items
// @Produce json
// @Param feedId query []string false "Feed IDs"
// @Param filter query string false "read, unread or saved"
// @Success 200 {object} idsResponse
// @Router /items/ids [get]
func (h *ItemHandler) ListIDs(c echo.Context) error {
	feedIDs, _, err := parseIDList[model.FeedID](c, "feedId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid feedId"})
	}
	filter, err := model.ParseFeedItemFilter(c.QueryParam("filter"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid filter"})
	}
	uid, _ := userID(c)
	ids, err := h.query.GetFeedItemIDs(c.Request().Context(), uid, feedIDs, filter)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, idsResponse{IDs: formatIDs(ids)})
}

// Get returns one item with the caller's overlay.
// @Summary Get a feed item
// @Tags items
// @Produce json
// @Param id path string true "Feed ID"
// @Param itemId path string true "Item ID"
// @Success 200 {object} feedItemResponse
// @Failure 404 {object} errorResponse
// @Router /feeds/{id}/items/{itemId} [get]
func (h *ItemHandler) Get(c echo.Context) error {
	feedID, err := parseIDParam(c, "id", model.NewFeedID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	itemID, err := parseIDParam(c, "itemId", model.NewFeedItemID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	uid, _ := userID(c)
	item, err := h.query.GetFeedItem(c.Request().Context(), uid, feedID, itemID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, newFeedItemResponse(item))
}

// UpdateItem applies read, unread, save or unsave to one item.
// @Summary Update an item
// @Tags items
// @Accept json
// @Param id path string true "Item ID"
// @Param action body actionRequest true "Action"
// @Success 204
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /items/{id}/actions [post]
func (h *ItemHandler) UpdateItem(c echo.Context) error {
	return applyAction(c, model.NewFeedItemID, func(uid model.UserID, id model.FeedItemID, action model.FeedUpdateAction) error {
		return h.update.UpdateFeedItem(c.Request().Context(), uid, id, action)
	})
}

// UpdateFeed applies an action to every item of a feed.
// @Summary Update all items of a feed
// @Tags feeds
// @Accept json
// @Param id path string true "Feed ID"
// @Param action body actionRequest true "Action"
// @Success 204
// @Router /feeds/{id}/actions [post]
func (h *ItemHandler) UpdateFeed(c echo.Context) error {
	return applyAction(c, model.NewFeedID, func(uid model.UserID, id model.FeedID, action model.FeedUpdateAction) error {
		return h.update.UpdateFeed(c.Request().Context(), uid, id, action)
	})
}

// UpdateGroup applies an action to every item of a group's feeds.
// @Summary Update all items of a group
// @Tags groups
// @Accept json
// @Param id path string true "Group ID"
// @Param action body actionRequest true "Action"
// @Success 204
// @Router /groups/{id}/actions [post]
func (h *ItemHandler) UpdateGroup(c echo.Context) error {
	return applyAction(c, model.NewGroupID, func(uid model.UserID, id model.GroupID, action model.FeedUpdateAction) error {
		return h.update.UpdateGroup(c.Request().Context(), uid, id, action)
	})
}

func applyAction[T ~int64](c echo.Context, newID func(int64) (T, error), apply func(model.UserID, T, model.FeedUpdateAction) error) error {
	id, err := parseIDParam(c, "id", newID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	var req actionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	action, err := model.ParseFeedUpdateAction(req.Action)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid action"})
	}
	uid, _ := userID(c)
	if err := apply(uid, id, action); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type queryError string

func (e queryError) Error() string { return string(e) }

// parseItemsQuery reads the item list parameters. maxId, sinceId and
// withIds are mutually exclusive.
func parseItemsQuery(c echo.Context) (service.FeedItemsQuery, error) {
	var q service.FeedItemsQuery

	feedIDs, _, err := parseIDList[model.FeedID](c, "feedId")
	if err != nil {
		return q, queryError("invalid feedId")
	}
	q.FeedIDs = feedIDs

	var filters []model.FeedItemIDFilter
	if id, ok, err := parseOptionalID(c, "maxId"); err != nil {
		return q, queryError("invalid maxId")
	} else if ok {
		filters = append(filters, model.MaxIDFilter{ID: model.FeedItemID(id)})
	}
	if id, ok, err := parseOptionalID(c, "sinceId"); err != nil {
		return q, queryError("invalid sinceId")
	} else if ok {
		filters = append(filters, model.SinceIDFilter{ID: model.FeedItemID(id)})
	}
	if ids, ok, err := parseIDList[model.FeedItemID](c, "withIds"); err != nil {
		return q, queryError("invalid withIds")
	} else if ok {
		filters = append(filters, model.WithIDsFilter{IDs: ids})
	}
	if len(filters) > 1 {
		return q, queryError("maxId, sinceId and withIds are exclusive")
	}
	if len(filters) == 1 {
		q.IDFilter = filters[0]
	}

	if q.Filter, err = model.ParseFeedItemFilter(c.QueryParam("filter")); err != nil {
		return q, queryError("invalid filter")
	}

	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return q, queryError("invalid limit")
		}
		q.Limit = limit
	}
	return q, nil
}
