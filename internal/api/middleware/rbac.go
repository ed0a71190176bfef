package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/daybook/journal-api/internal/core/domain"
	"github.com/daybook/journal-api/internal/core/ports"
)

// ContextRole is the context key under which the resolved role is set.
const ContextRole = "role"

// RequireRole gates a route to the given roles. The caller's CURRENT role is
// re-read from the store on every request — a role claim baked into a token
// would go stale the moment an administrator demotes the account.
func RequireRole(users ports.UserRepository, allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, _ := c.Get(ContextUserID).(string)
			if userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "unknown account")
				}
				return err
			}

			if _, ok := allowed[user.Role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}

			c.Set(ContextRole, user.Role)
			return next(c)
		}
	}
}
