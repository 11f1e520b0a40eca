package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"feedsng/internal/logger"
	"feedsng/internal/model"
	"feedsng/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

type feedResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	URL             string  `json:"url"`
	SiteURL         *string `json:"siteUrl,omitempty"`
	Description     *string `json:"description,omitempty"`
	LastRefreshedAt *string `json:"lastRefreshedAt,omitempty"`
	ErrorMessage    *string `json:"errorMessage,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

type groupResponse struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	FeedIDs []string `json:"feedIds"`
}

type feedItemResponse struct {
	ID        string `json:"id"`
	FeedID    string `json:"feedId"`
	Title     string `json:"title"`
	Author    string `json:"author,omitempty"`
	HTML      string `json:"html"`
	URL       string `json:"url"`
	CreatedAt string `json:"createdAt"`
	IsRead    bool   `json:"isRead"`
	IsSaved   bool   `json:"isSaved"`
}

type idsResponse struct {
	IDs []string `json:"ids"`
}

type countResponse struct {
	Count int `json:"count"`
}

type importStartedResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type importCancelledResponse struct {
	Cancelled bool `json:"cancelled"`
}

type importIdleResponse struct {
	Status string `json:"status"`
}

func writeServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalid), errors.Is(err, model.ErrInvalidID):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "resource not found"})
	case errors.Is(err, service.ErrAlreadyRefreshing):
		return c.JSON(http.StatusConflict, errorResponse{Error: "refresh already in progress"})
	case errors.Is(err, service.ErrImportRunning):
		return c.JSON(http.StatusConflict, errorResponse{Error: "import already running"})
	case errors.Is(err, service.ErrConflict):
		return c.JSON(http.StatusConflict, errorResponse{Error: "conflict"})
	case errors.Is(err, service.ErrFeedFetch):
		return c.JSON(http.StatusBadGateway, errorResponse{Error: "feed fetch failed"})
	default:
		logger.Error("request failed", "module", "handler", "action", "request", "resource", "http", "result", "failed",
			"path", c.Request().URL.Path, "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func formatID[T ~int64](id T) string {
	return strconv.FormatInt(int64(id), 10)
}

func formatIDs[T ~int64](ids []T) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, formatID(id))
	}
	return out
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func newFeedResponse(feed model.Feed) feedResponse {
	resp := feedResponse{
		ID:           formatID(feed.ID),
		Name:         feed.Name,
		URL:          feed.URL,
		SiteURL:      feed.SiteURL,
		Description:  feed.Description,
		ErrorMessage: feed.ErrorMessage,
		CreatedAt:    formatTime(feed.CreatedAt),
		UpdatedAt:    formatTime(feed.UpdatedAt),
	}
	if feed.LastRefreshedAt != nil {
		refreshed := formatTime(*feed.LastRefreshedAt)
		resp.LastRefreshedAt = &refreshed
	}
	return resp
}

func newGroupResponse(group model.Group) groupResponse {
	return groupResponse{
		ID:      formatID(group.ID),
		Name:    group.Name,
		FeedIDs: formatIDs(group.FeedIDs),
	}
}

func newFeedItemResponse(item model.UserFeedItem) feedItemResponse {
	return feedItemResponse{
		ID:        formatID(item.ID),
		FeedID:    formatID(item.FeedID),
		Title:     item.Title,
		Author:    item.Author,
		HTML:      item.HTML,
		URL:       item.URL,
		CreatedAt: formatTime(item.CreatedAt),
		IsRead:    item.IsRead,
		IsSaved:   item.IsSaved,
	}
}
