package model

import "time"

// Booking mirrors the `bookings` table: the append-only ledger of confirmed
// purchases.  Rows are immutable once written; there is no cancellation or
// refund path.  Attendee identity is the free-text name/email captured at
// booking time, not a managed account.
//
// Fields:
//  ID            – primary key identifier.
//  EventID       – the booked event.
//  FullName      – attendee name as entered on the form.
//  Email         – attendee email as entered on the form.
//  NormalQty     – number of normal tickets purchased.
//  ConcessionQty – number of concession tickets purchased.
//  CreatedAt     – when the booking was confirmed.
type Booking struct {
    ID            uint64    // bookings.id
    EventID       uint64    // bookings.event_id
    FullName      string    // bookings.full_name
    Email         string    // bookings.email
    NormalQty     uint32    // bookings.normal_qty
    ConcessionQty uint32    // bookings.concession_qty
    CreatedAt     time.Time // bookings.created_at
}
