package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// ListBookings handles GET /organiser/events/:id/bookings and returns the
// booking ledger for one of the organiser's events, newest first.
func (h *OrganiserHandler) ListBookings(c echo.Context) error {
	organiserID, err := getOrganiserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || eventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	items, err := h.Bookings.ListByEvent(c.Request().Context(), eventID, organiserID)
	if err != nil {
		return h.eventFail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
