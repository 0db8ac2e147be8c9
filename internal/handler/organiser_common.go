package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/repository"
)

// OrganiserHandler bundles repositories for organisers to manage their
// events, tiers, bookings and settings. All methods assume JWT
// authentication and role validation have already run in middleware.
type OrganiserHandler struct {
	Events   *repository.EventRepo
	Tickets  *repository.TicketRepo
	Bookings *repository.BookingRepo
	Settings *repository.SettingsRepo
}

// NewOrganiserHandler constructs an OrganiserHandler and panics if any
// dependency is nil.
func NewOrganiserHandler(events *repository.EventRepo, tickets *repository.TicketRepo, bookings *repository.BookingRepo, settings *repository.SettingsRepo) *OrganiserHandler {
	if events == nil || tickets == nil || bookings == nil || settings == nil {
		panic("nil repository passed to NewOrganiserHandler")
	}
	return &OrganiserHandler{
		Events:   events,
		Tickets:  tickets,
		Bookings: bookings,
		Settings: settings,
	}
}

// getOrganiserID extracts the authenticated organiser's ID from echo.Context.
func getOrganiserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// parseEventDate accepts either a bare date (2026-09-01) or a full
// RFC 3339 timestamp.
func parseEventDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
