package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Phishman81/ferienhaus-belegungsplan/internal/security"
)

// attestationHeader carries the client's attestation token.
const attestationHeader = "X-Attestation-Token"

// Attestation returns a middleware that checks the attestation token on
// write endpoints.  A disabled guard passes everything through.  When the
// provider cannot be reached the request is let through with a warning;
// only a definitive negative verdict is rejected.
func Attestation(guard *security.AttestationGuard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !guard.Enabled() {
				return next(c)
			}
			token := c.Request().Header.Get(attestationHeader)
			ok, err := guard.Verify(c.Request().Context(), token)
			if err != nil {
				c.Logger().Warnf("attestation check failed open: %v", err)
				return next(c)
			}
			if !ok {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "attestation check failed"})
			}
			return next(c)
		}
	}
}
