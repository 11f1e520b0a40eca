package handler

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"feedsng/internal/logger"
	"feedsng/internal/model"
	"feedsng/internal/service"
)

const maxOPMLSize = 5 << 20

type OPMLHandler struct {
	service service.OPMLService
	tasks   service.ImportTaskService
}

func NewOPMLHandler(service service.OPMLService, tasks service.ImportTaskService) *OPMLHandler {
	return &OPMLHandler{service: service, tasks: tasks}
}

func (h *OPMLHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/opml/import", h.Import)
	g.GET("/opml/import/status", h.Status)
	g.DELETE("/opml/import", h.Cancel)
	g.GET("/opml/export", h.Export)
}

// Import starts a background import of an OPML file or body.
// @Summary Import OPML
// @Description Subscribe to every feed of an OPML document. Poll /opml/import/status for progress.
// @Tags opml
// @Accept multipart/form-data
// @Accept xml
// @Produce json
// @Param file formData file false "OPML file to import"
// @Success 202 {object} importStartedResponse
// @Failure 400 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Failure 413 {object} errorResponse
// @Router /opml/import [post]
func (h *OPMLHandler) Import(c echo.Context) error {
	req := c.Request()
	req.Body = http.MaxBytesReader(c.Response().Writer, req.Body, maxOPMLSize)

	var reader io.Reader
	if strings.HasPrefix(req.Header.Get("Content-Type"), "multipart/") {
		file, err := c.FormFile("file")
		if err != nil {
			if err == http.ErrMissingFile {
				return c.JSON(http.StatusBadRequest, errorResponse{Error: "missing file"})
			}
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
		}
		if file.Size > maxOPMLSize {
			return c.JSON(http.StatusRequestEntityTooLarge, errorResponse{Error: "file too large"})
		}
		src, err := file.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
		}
		defer src.Close()
		reader = src
	} else {
		reader = req.Body
	}

	payload, err := io.ReadAll(io.LimitReader(reader, maxOPMLSize))
	if err != nil {
		return c.JSON(http.StatusRequestEntityTooLarge, errorResponse{Error: "file too large"})
	}
	if len(bytes.TrimSpace(payload)) == 0 {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "empty document"})
	}

	uid, _ := userID(c)
	id, ctx, err := h.tasks.Start(uid)
	if err != nil {
		return writeServiceError(c, err)
	}
	go h.run(ctx, id, uid, payload)
	return c.JSON(http.StatusAccepted, importStartedResponse{ID: id, Status: service.TaskRunning})
}

func (h *OPMLHandler) run(ctx context.Context, id string, uid model.UserID, payload []byte) {
	result, err := h.service.ImportFromOPML(ctx, uid, bytes.NewReader(payload), func(p service.ImportProgress) {
		h.tasks.Update(id, p)
	})
	if err != nil {
		logger.Warn("opml import task failed", "module", "handler", "action", "import", "resource", "opml", "result", "failed", "task_id", id, "error", err)
		h.tasks.Fail(id, err)
		return
	}
	h.tasks.Complete(id, result)
}

// Status reports the caller's latest import task.
// @Summary Import status
// @Tags opml
// @Produce json
// @Success 200 {object} service.ImportTask
// @Router /opml/import/status [get]
func (h *OPMLHandler) Status(c echo.Context) error {
	uid, _ := userID(c)
	task := h.tasks.Get(uid)
	if task == nil {
		return c.JSON(http.StatusOK, importIdleResponse{Status: "idle"})
	}
	return c.JSON(http.StatusOK, task)
}

// Cancel stops the caller's running import.
// @Summary Cancel import
// @Tags opml
// @Produce json
// @Success 200 {object} importCancelledResponse
// @Router /opml/import [delete]
func (h *OPMLHandler) Cancel(c echo.Context) error {
	uid, _ := userID(c)
	return c.JSON(http.StatusOK, importCancelledResponse{Cancelled: h.tasks.Cancel(uid)})
}

// Export exports the caller's subscriptions as OPML.
// @Summary Export OPML
// @Tags opml
// @Produce xml
// @Success 200 {string} string "OPML file content"
// @Router /opml/export [get]
func (h *OPMLHandler) Export(c echo.Context) error {
	uid, _ := userID(c)
	payload, err := h.service.ExportOPML(c.Request().Context(), uid)
	if err != nil {
		return writeServiceError(c, err)
	}
	c.Response().Header().Set("Content-Disposition", `attachment; filename="feedsng.opml"`)
	return c.Blob(http.StatusOK, "application/xml", payload)
}
