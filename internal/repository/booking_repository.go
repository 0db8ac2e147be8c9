package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// BookingRepo writes and reads the append-only booking ledger.  Creating
// a booking also decrements tier stock; both effects happen inside one
// transaction owned by this repository so a failure in any step leaves
// the ledger and the inventory untouched.
type BookingRepo struct {
	db      *sql.DB
	tickets *TicketRepo
}

// NewBookingRepo constructs a BookingRepo.  The ticket repository is used
// for the in-transaction stock decrements.
func NewBookingRepo(db *sql.DB, tickets *TicketRepo) *BookingRepo {
	return &BookingRepo{db: db, tickets: tickets}
}

// Create inserts the booking row and takes the requested quantities from
// both tiers in a single transaction.  Tiers with a zero request are
// skipped.  When a conditional decrement matches no row the remaining
// stock is short: the transaction is rolled back and
// ErrInsufficientStock is returned.  On success the generated ID and
// timestamp are populated on the given struct.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const ins = `INSERT INTO bookings (event_id, full_name, email, normal_qty, concession_qty) VALUES (?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, ins, b.EventID, b.FullName, b.Email, b.NormalQty, b.ConcessionQty)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)

	for _, tier := range []struct {
		name string
		qty  uint32
	}{
		{model.TierNormal, b.NormalQty},
		{model.TierConcession, b.ConcessionQty},
	} {
		if tier.qty == 0 {
			continue
		}
		affected, err := r.tickets.DecrementTx(ctx, tx, b.EventID, tier.name, tier.qty)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrInsufficientStock
		}
	}

	if err := tx.QueryRowContext(ctx, `SELECT created_at FROM bookings WHERE id = ?`, b.ID).Scan(&b.CreatedAt); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ListByEvent returns the ledger for one event, newest first, after
// verifying that the event belongs to the calling organiser.  It returns
// ErrEventNotFound for unknown events and ErrForbidden when the event is
// owned by someone else.
func (r *BookingRepo) ListByEvent(ctx context.Context, eventID, organiserID uint64) ([]model.Booking, error) {
	var ownerID uint64
	err := r.db.QueryRowContext(ctx, `SELECT organiser_id FROM events WHERE id = ?`, eventID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if ownerID != organiserID {
		return nil, ErrForbidden
	}
	const q = `SELECT id, event_id, full_name, email, normal_qty, concession_qty, created_at
	           FROM bookings WHERE event_id = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	bookings := make([]model.Booking, 0)
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.EventID, &b.FullName, &b.Email, &b.NormalQty, &b.ConcessionQty, &b.CreatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
