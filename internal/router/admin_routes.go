package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/festival-booking/internal/handler"
	"github.com/iliyamo/festival-booking/internal/middleware"
)

// RegisterAdmin registers the administrative surface under /v1/admin.
// Every route requires a valid access token whose admin flag is set;
// RequireAdmin rejects everyone else with 403.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireAdmin())

	g.GET("/bookings", a.ListBookings)
	g.GET("/bookings/by-day", a.BookingsByDay)
	g.GET("/bookings/export", a.ExportBookings)
	g.POST("/bookings", a.CreateBooking)
	g.DELETE("/bookings/:id", a.DeleteBooking)

	g.POST("/days", a.CreateDay)
	g.PUT("/days/:id", a.UpdateDay)
	g.DELETE("/days/:id", a.DeleteDay)

	g.PUT("/festival", a.UpdateFestival)
}
