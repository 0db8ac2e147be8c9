// Package booking implements the booking engine: availability resolution,
// request validation, the booking transaction and the checkout preview.
// It sits between the attendee HTTP handlers and the repositories.
package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// ErrAvailabilityFetch wraps storage failures encountered while reading
// tier rows.  Handlers map it to a 500 with a generic message.
var ErrAvailabilityFetch = errors.New("availability fetch failed")

// TicketStore is the slice of the ticket repository the engine reads.
type TicketStore interface {
	TiersByEvent(ctx context.Context, eventID uint64) ([]model.Ticket, error)
}

// BookingStore persists a validated booking.  Implementations must make
// the ledger insert and the stock decrements atomic, and must return
// repository.ErrInsufficientStock when the stock check inside the
// transaction fails.
type BookingStore interface {
	Create(ctx context.Context, b *model.Booking) error
}

// Availability is the per-event fold of tier rows: remaining quantity
// and unit price for each of the two tiers.  Missing tiers stay zero.
type Availability struct {
	NormalQty            uint32 `json:"normal_qty"`
	NormalPriceCents     uint32 `json:"normal_price_cents"`
	ConcessionQty        uint32 `json:"concession_qty"`
	ConcessionPriceCents uint32 `json:"concession_price_cents"`
}

// Quote is the read-only checkout breakdown returned by Preview.  It
// echoes the request alongside unit prices and the computed total.
type Quote struct {
	FullName             string `json:"full_name"`
	Email                string `json:"email"`
	NormalQty            uint32 `json:"normal_qty"`
	ConcessionQty        uint32 `json:"concession_qty"`
	NormalPriceCents     uint32 `json:"normal_price_cents"`
	ConcessionPriceCents uint32 `json:"concession_price_cents"`
	TotalCents           uint64 `json:"total_cents"`
}

// Engine ties availability, validation and persistence together.  It is
// constructed once at startup with the concrete repositories and shared
// by the attendee handlers.
type Engine struct {
	tickets  TicketStore
	bookings BookingStore
}

// NewEngine constructs an Engine.  Both stores must be non-nil.
func NewEngine(tickets TicketStore, bookings BookingStore) *Engine {
	if tickets == nil || bookings == nil {
		panic("nil store passed to NewEngine")
	}
	return &Engine{tickets: tickets, bookings: bookings}
}

// Availability reads all tier rows for the event and folds them by type.
// Unknown events fold to all zeros; callers check event existence and
// publication separately.  The fold is last-wins in fetch order, though
// the unique key on (event_id, type) means at most one row per tier.
func (e *Engine) Availability(ctx context.Context, eventID uint64) (Availability, error) {
	tiers, err := e.tickets.TiersByEvent(ctx, eventID)
	if err != nil {
		return Availability{}, fmt.Errorf("%w: %v", ErrAvailabilityFetch, err)
	}
	var av Availability
	for _, t := range tiers {
		switch t.Type {
		case model.TierNormal:
			av.NormalQty = t.Quantity
			av.NormalPriceCents = t.PriceCents
		case model.TierConcession:
			av.ConcessionQty = t.Quantity
			av.ConcessionPriceCents = t.PriceCents
		}
	}
	return av, nil
}

// Book validates the request against current availability and, when the
// pre-check passes, runs the booking transaction: one ledger insert plus
// one conditional decrement per requested tier, all or nothing.  A
// concurrent booking that drains the stock between the pre-check and
// the transaction surfaces as repository.ErrInsufficientStock from the
// store; nothing is written in that case.
func (e *Engine) Book(ctx context.Context, eventID uint64, req Request) (*model.Booking, error) {
	av, err := e.Availability(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if verr := Validate(req, av); verr != nil {
		return nil, verr
	}
	b := &model.Booking{
		EventID:       eventID,
		FullName:      req.FullName,
		Email:         req.Email,
		NormalQty:     req.NormalQty,
		ConcessionQty: req.ConcessionQty,
	}
	if err := e.bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Preview computes the checkout quote without touching stock or the
// ledger.  Field and ticket-selected validation applies, but stock
// sufficiency is deliberately not re-checked: a preview never guarantees
// the later booking will succeed.
func (e *Engine) Preview(ctx context.Context, eventID uint64, req Request) (*Quote, error) {
	av, err := e.Availability(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if verr := validatePreview(req); verr != nil {
		return nil, verr
	}
	return &Quote{
		FullName:             req.FullName,
		Email:                req.Email,
		NormalQty:            req.NormalQty,
		ConcessionQty:        req.ConcessionQty,
		NormalPriceCents:     av.NormalPriceCents,
		ConcessionPriceCents: av.ConcessionPriceCents,
		TotalCents: uint64(req.NormalQty)*uint64(av.NormalPriceCents) +
			uint64(req.ConcessionQty)*uint64(av.ConcessionPriceCents),
	}, nil
}

// validatePreview applies rules 1 and 2 only; see Preview.
func validatePreview(req Request) *ValidationError {
	stocked := Availability{NormalQty: req.NormalQty, ConcessionQty: req.ConcessionQty}
	return Validate(req, stocked)
}
