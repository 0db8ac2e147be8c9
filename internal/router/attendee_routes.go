package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/handler"
)

// RegisterAttendee registers the public attendee-facing endpoints.
// No authentication applies here; the caller passes the rate limiter
// and response cache middleware so browse pages are cached while the
// booking POSTs stay rate limited but uncached.
func RegisterAttendee(e *echo.Echo, a *handler.AttendeeHandler, ratelimit, cache echo.MiddlewareFunc) {
	g := e.Group("/attendee", ratelimit)

	// browse pages, cacheable
	g.GET("/home", a.Home, cache)
	g.GET("/book/:id", a.ShowEvent, cache)

	// booking flow, never cached
	g.POST("/book/:id", a.Book)
	g.POST("/checkout/:id", a.Checkout)
}
