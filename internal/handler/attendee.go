// Package handler exposes HTTP handlers for the attendee and organiser
// surfaces.  This file covers the public attendee flow: browsing
// published events, the booking form data, the booking submission and
// the checkout preview.  No authentication is required; attendee
// identity is just the name/email captured per booking.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/booking"
	"github.com/iliyamo/event-ticketing/internal/model"
	"github.com/iliyamo/event-ticketing/internal/queue"
	"github.com/iliyamo/event-ticketing/internal/repository"
	queue_publisher "github.com/iliyamo/event-ticketing/internal/service"
)

// EventBrowser is the slice of the event repository the attendee surface
// reads.  Only published events are reachable through it.
type EventBrowser interface {
	ListPublished(ctx context.Context) ([]repository.PublishedEventDetail, error)
	GetPublished(ctx context.Context, eventID uint64) (*repository.PublishedEventDetail, error)
}

// BookingEngine is the part of the booking engine the handlers call.
type BookingEngine interface {
	Availability(ctx context.Context, eventID uint64) (booking.Availability, error)
	Book(ctx context.Context, eventID uint64, req booking.Request) (*model.Booking, error)
	Preview(ctx context.Context, eventID uint64, req booking.Request) (*booking.Quote, error)
}

// AttendeeHandler groups the dependencies of the public booking flow.
// Publish sends booking confirmations to the broker; leaving it nil
// disables publishing (used in tests).
type AttendeeHandler struct {
	Events  EventBrowser
	Engine  BookingEngine
	Publish func(ctx context.Context, ev queue.BookingConfirmedEvent) error
}

// NewAttendeeHandler constructs an AttendeeHandler wired to the RabbitMQ
// publisher.  Dependencies must be non-nil.
func NewAttendeeHandler(events EventBrowser, engine BookingEngine) *AttendeeHandler {
	if events == nil || engine == nil {
		panic("nil dependency passed to NewAttendeeHandler")
	}
	return &AttendeeHandler{Events: events, Engine: engine, Publish: queue_publisher.PublishBookingConfirmed}
}

// bookingReq carries the booking/checkout form input.  Quantities arrive
// as free-form strings and coerce through booking.ParseQty: missing or
// non-numeric values count as zero.
type bookingReq struct {
	FullName      string `json:"full_name" form:"full_name"`
	Email         string `json:"email" form:"email"`
	NormalQty     string `json:"normal_qty" form:"normal_qty"`
	ConcessionQty string `json:"concession_qty" form:"concession_qty"`
}

func (r bookingReq) toRequest() booking.Request {
	return booking.Request{
		FullName:      r.FullName,
		Email:         r.Email,
		NormalQty:     booking.ParseQty(r.NormalQty),
		ConcessionQty: booking.ParseQty(r.ConcessionQty),
	}
}

// eventWithAvailability is one entry of the attendee homepage: the
// published event joined with its remaining stock and prices.
type eventWithAvailability struct {
	repository.PublishedEventDetail
	Availability booking.Availability `json:"availability"`
}

// Home handles GET /attendee/home.  It lists all published events in
// date order, each enriched with organiser display info and current
// availability.
func (h *AttendeeHandler) Home(c echo.Context) error {
	ctx := c.Request().Context()
	events, err := h.Events.ListPublished(ctx)
	if err != nil {
		return h.fail(c, err)
	}
	items := make([]eventWithAvailability, 0, len(events))
	for _, ev := range events {
		av, err := h.Engine.Availability(ctx, ev.ID)
		if err != nil {
			return h.fail(c, err)
		}
		items = append(items, eventWithAvailability{PublishedEventDetail: ev, Availability: av})
	}
	return c.JSON(http.StatusOK, echo.Map{"events": items})
}

// ShowEvent handles GET /attendee/book/:id.  It returns the booking form
// data for one published event.  Draft and unknown events both respond
// 404 so attendees cannot probe hidden events.
func (h *AttendeeHandler) ShowEvent(c echo.Context) error {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || eventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ctx := c.Request().Context()
	ev, err := h.Events.GetPublished(ctx, eventID)
	if err != nil {
		return h.fail(c, err)
	}
	av, err := h.Engine.Availability(ctx, eventID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, eventWithAvailability{PublishedEventDetail: *ev, Availability: av})
}

// Book handles POST /attendee/book/:id.  It validates the request and
// runs the booking transaction; on success one ledger row exists and
// both tier quantities reflect the purchase.
func (h *AttendeeHandler) Book(c echo.Context) error {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || eventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	var body bookingReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx := c.Request().Context()
	// Event must exist and be published before any stock is considered.
	ev, err := h.Events.GetPublished(ctx, eventID)
	if err != nil {
		return h.fail(c, err)
	}
	b, err := h.Engine.Book(ctx, eventID, body.toRequest())
	if err != nil {
		return h.fail(c, err)
	}

	// Notify downstream consumers; a broker failure never fails the booking.
	if h.Publish != nil {
		go func(b model.Booking, title string) {
			_ = h.Publish(context.Background(), queue.BookingConfirmedEvent{
				BookingID:     b.ID,
				EventID:       b.EventID,
				EventTitle:    title,
				FullName:      b.FullName,
				Email:         b.Email,
				NormalQty:     b.NormalQty,
				ConcessionQty: b.ConcessionQty,
				ConfirmedAt:   b.CreatedAt.UTC().Format(time.RFC3339),
			})
		}(*b, ev.Title)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":    "booking confirmed",
		"booking_id": b.ID,
	})
}

// Checkout handles POST /attendee/checkout/:id.  It returns the pricing
// breakdown for the requested quantities without touching stock or the
// ledger.  Stock sufficiency is not re-checked here; only the later
// booking call is authoritative.
func (h *AttendeeHandler) Checkout(c echo.Context) error {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || eventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	var body bookingReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx := c.Request().Context()
	ev, err := h.Events.GetPublished(ctx, eventID)
	if err != nil {
		return h.fail(c, err)
	}
	quote, err := h.Engine.Preview(ctx, eventID, body.toRequest())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"event": ev,
		"quote": quote,
	})
}

// fail maps engine and repository errors onto the response taxonomy:
// validation and stock problems are user-correctable 400s with a
// friendly message, unknown/unpublished events are 404s, and anything
// else is logged and surfaced as a generic 500.
func (h *AttendeeHandler) fail(c echo.Context, err error) error {
	var verr *booking.ValidationError
	if errors.As(err, &verr) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": verr.Message, "reason": verr.Reason})
	}
	if errors.Is(err, repository.ErrInsufficientStock) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "not enough tickets available", "reason": booking.ReasonInsufficientStock})
	}
	if errors.Is(err, repository.ErrEventNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found or unpublished"})
	}
	c.Logger().Error(err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "something went wrong"})
}
