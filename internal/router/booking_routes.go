package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/festival-booking/internal/handler"
	"github.com/iliyamo/festival-booking/internal/middleware"
)

// RegisterBookings registers the self-service booking lifecycle and
// the profile endpoints. Everything here requires a valid access
// token; each operation is scoped to the caller's own booking, so no
// identifiers are taken from the URL.
func RegisterBookings(e *echo.Echo, b *handler.BookingHandler, p *handler.ProfileHandler, jwtSecret string, mw ...echo.MiddlewareFunc) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	// Rate limiting runs after auth so per-user keys see the real identity.
	g.Use(mw...)

	g.POST("/bookings", b.CreateBooking)
	g.GET("/bookings/my-booking", b.GetMyBooking)
	g.PUT("/bookings/my-booking", b.UpdateMyBooking)
	g.DELETE("/bookings/my-booking", b.CancelMyBooking)

	g.GET("/users/profile", p.GetProfile)
	g.PUT("/users/profile", p.UpdateProfile)
}
