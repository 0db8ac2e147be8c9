package model

// Ticket tier types.  Every event carries at most one row per tier.
const (
    TierNormal     = "normal"
    TierConcession = "concession"
)

// Ticket represents the availability and pricing of one tier for an event.
// The (event_id, type) pair is unique.  Quantity is the REMAINING stock,
// not the original allocation: successful bookings decrement it in place.
// Prices are stored in cents to keep arithmetic exact.
type Ticket struct {
    ID         uint64 // tickets.id
    EventID    uint64 // tickets.event_id
    Type       string // tickets.type (normal or concession)
    Quantity   uint32 // tickets.quantity, remaining stock
    PriceCents uint32 // tickets.price_cents
}
