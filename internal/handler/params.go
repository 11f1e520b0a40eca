package handler

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"feedsng/internal/model"
)

// UserIDKey is the echo context key holding the caller's model.UserID.
const UserIDKey = "userID"

func userID(c echo.Context) (model.UserID, bool) {
	id, ok := c.Get(UserIDKey).(model.UserID)
	return id, ok && id > 0
}

// parseIDParam reads a path id through its model constructor, so non-positive
// values fail with model.ErrInvalidID.
func parseIDParam[T ~int64](c echo.Context, name string, newID func(int64) (T, error)) (T, error) {
	value, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, err
	}
	return newID(value)
}

// parseIDList reads ids from a query parameter given either repeatedly or
// as a comma separated list.
func parseIDList[T ~int64](c echo.Context, name string) ([]T, bool, error) {
	values, present := c.QueryParams()[name]
	if !present {
		return nil, false, nil
	}
	ids := make([]T, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil || id <= 0 {
				return nil, true, model.ErrInvalidID
			}
			ids = append(ids, T(id))
		}
	}
	return ids, true, nil
}

func parseOptionalID(c echo.Context, name string) (int64, bool, error) {
	value := strings.TrimSpace(c.QueryParam(name))
	if value == "" {
		return 0, false, nil
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, true, model.ErrInvalidID
	}
	return id, true, nil
}
