package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"feedsng/internal/handler"
)

func NewRouter(
	feedHandler *handler.FeedHandler,
	itemHandler *handler.ItemHandler,
	opmlHandler *handler.OPMLHandler,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(RequestLoggerMiddleware())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api", UserIDMiddleware())
	feedHandler.RegisterRoutes(api)
	itemHandler.RegisterRoutes(api)
	opmlHandler.RegisterRoutes(api)

	return e
}
