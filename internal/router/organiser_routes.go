package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/handler"
	"github.com/iliyamo/event-ticketing/internal/middleware"
)

// RegisterOrganiser registers ORGANISER-scoped endpoints under /organiser.
// All routes require a valid JWT and the ORGANISER role.
func RegisterOrganiser(e *echo.Echo, o *handler.OrganiserHandler, jwtSecret string) {
	g := e.Group(
		"/organiser",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(handler.RoleOrganiser),
	)

	// ---- Events ----
	g.POST("/events", o.CreateEvent)
	g.GET("/events", o.ListEvents)
	g.GET("/events/:id", o.GetEvent)
	g.PUT("/events/:id", o.UpdateEvent)
	g.PATCH("/events/:id", o.UpdateEvent)
	g.POST("/events/:id/publish", o.PublishEvent)
	g.DELETE("/events/:id", o.DeleteEvent)

	// ---- Booking ledger ----
	g.GET("/events/:id/bookings", o.ListBookings)

	// ---- Settings ----
	g.GET("/settings", o.GetSettings)
	g.PUT("/settings", o.UpdateSettings)
}
