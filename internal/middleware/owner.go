package middleware // middleware provides shared request processing for handlers

import (
	"net/http" // http package defines standard HTTP status codes

	"github.com/labstack/echo/v4" // echo provides middleware chaining and context
)

// RequireOwner returns a middleware that enforces that the authenticated
// session belongs to the configured owner allowlist.  The flag is decided
// when the session token is issued and carried in the "owner" claim, so
// this middleware only inspects the context value stored by JWTAuth.
// Non-owner requests are aborted with 403 Forbidden.
func RequireOwner() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !SessionIsOwner(c) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "only owners can delete bookings"})
			}
			return next(c)
		}
	}
}
