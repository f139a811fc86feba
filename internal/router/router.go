package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/Phishman81/ferienhaus-belegungsplan/internal/handler"    // handlers implementing the endpoints
	"github.com/Phishman81/ferienhaus-belegungsplan/internal/middleware" // JWT, owner, attestation and limiter middleware
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the magic-link sign-in routes.  Requesting a link
// sits behind the per-IP limiter and the attestation guard; completing a
// sign-in only needs the one-time token from the emailed link.  /v1/auth/me
// and logout require a valid session.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, loginLimiter, attestation echo.MiddlewareFunc) {
	g := e.Group("/v1/auth")
	g.POST("/magic-link", a.RequestMagicLink, loginLimiter, attestation)
	g.GET("/complete", a.CompleteSignIn)

	auth := e.Group("/v1/auth")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	auth.POST("/logout", a.Logout)
}

// RegisterBookings registers the booking and calendar routes.  Reading the
// calendar is public: visitors see current reservations before signing in.
// Creating requires a session plus the attestation guard; deleting
// additionally requires the owner role.
func RegisterBookings(e *echo.Echo, b *handler.BookingHandler, cal *handler.CalendarHandler, jwtSecret string, attestation echo.MiddlewareFunc) {
	e.GET("/v1/bookings", b.List)
	e.GET("/v1/bookings/stream", b.Stream)
	e.GET("/v1/calendar/events", cal.Events)
	e.GET("/v1/calendar/focus", cal.Focus)
	e.POST("/v1/calendar/view", cal.ViewSettled)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.POST("/bookings", b.Create, attestation)
	auth.DELETE("/bookings/:id", b.Delete, middleware.RequireOwner())
}
