package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/daybook/journal-api/internal/api/middleware"
)

// ctxUserID extracts the verified caller id injected by the Auth middleware.
// Its presence proves the middleware ran; a protected handler reached without
// it is a routing mistake and gets a 401, not a panic.
func ctxUserID(c echo.Context) (string, error) {
	userID, _ := c.Get(middleware.ContextUserID).(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, nil
}
