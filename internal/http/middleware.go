package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"feedsng/internal/handler"
	"feedsng/internal/logger"
	"feedsng/internal/model"
)

// UserIDHeader carries the caller's user id. Authentication happens in front
// of this service.
const UserIDHeader = "X-User-ID"

// RequestLoggerMiddleware logs HTTP requests using logger.
func RequestLoggerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			if err := next(c); err != nil {
				c.Error(err)
			}

			req := c.Request()
			status := c.Response().Status
			args := []any{
				"module", "http",
				"action", "request",
				"resource", "http",
				"result", "ok",
				"method", req.Method,
				"path", req.URL.Path,
				"status_code", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"remote_ip", c.RealIP(),
			}
			switch {
			case status >= 500:
				args[7] = "failed"
				logger.Error("http request", args...)
			case status >= 400:
				args[7] = "failed"
				logger.Warn("http request", args...)
			default:
				logger.Debug("http request", args...)
			}
			return nil
		}
	}
}

// UserIDMiddleware stores the user id from the X-User-ID header in the
// request context under handler.UserIDKey.
func UserIDMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := strings.TrimSpace(c.Request().Header.Get(UserIDHeader))
			if raw == "" {
				logger.Warn("user id missing", "module", "http", "action", "request", "resource", "auth", "result", "failed",
					"method", c.Request().Method, "path", c.Request().URL.Path, "remote_ip", c.RealIP())
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "missing " + UserIDHeader + " header",
				})
			}
			value, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid user id"})
			}
			id, err := model.NewUserID(value)
			if err != nil {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid user id"})
			}
			c.Set(handler.UserIDKey, id)
			return next(c)
		}
	}
}
