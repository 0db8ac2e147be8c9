// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when a booking is successfully recorded.
// It contains enough information for downstream consumers to log, notify, or
// trigger analytics without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID     uint64 `json:"booking_id"`
	EventID       uint64 `json:"event_id"`
	EventTitle    string `json:"event_title"`
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	NormalQty     uint32 `json:"normal_qty"`
	ConcessionQty uint32 `json:"concession_qty"`
	ConfirmedAt   string `json:"confirmed_at"`
}
