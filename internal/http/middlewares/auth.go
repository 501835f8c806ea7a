package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HeaderOwnerID carries the authenticated user id, set by the upstream
// auth proxy after it has verified the session.
const HeaderOwnerID = "X-User-ID"

// ContextOwnerID is the echo context key handlers read the owner from.
const ContextOwnerID = "owner_id"

func RequireOwner() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ownerID := c.Request().Header.Get(HeaderOwnerID)
			if ownerID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing "+HeaderOwnerID+" header")
			}
			c.Set(ContextOwnerID, ownerID)
			return next(c)
		}
	}
}
