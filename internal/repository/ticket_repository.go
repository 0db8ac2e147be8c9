package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// TicketRepo manages the per-event tier rows in the `tickets` table.
// The (event_id, type) pair carries a unique key, so writes always go
// through UpsertTx rather than plain inserts.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo constructs a TicketRepo with the given DB handle.
func NewTicketRepo(db *sql.DB) *TicketRepo {
	return &TicketRepo{db: db}
}

// TiersByEvent returns the tier rows for an event in fetch order.  An
// unknown event simply yields an empty slice; availability for it folds
// to zero.
func (r *TicketRepo) TiersByEvent(ctx context.Context, eventID uint64) ([]model.Ticket, error) {
	const q = `SELECT id, event_id, type, quantity, price_cents FROM tickets WHERE event_id = ?`
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	tiers := make([]model.Ticket, 0, 2)
	for rows.Next() {
		var t model.Ticket
		if err := rows.Scan(&t.ID, &t.EventID, &t.Type, &t.Quantity, &t.PriceCents); err != nil {
			return nil, err
		}
		tiers = append(tiers, t)
	}
	return tiers, rows.Err()
}

// UpsertTx writes one tier row within the caller's transaction, inserting
// or replacing quantity and price by (event_id, type).
func (r *TicketRepo) UpsertTx(ctx context.Context, tx *sql.Tx, t model.Ticket) error {
	const q = `INSERT INTO tickets (event_id, type, quantity, price_cents) VALUES (?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE quantity = VALUES(quantity), price_cents = VALUES(price_cents)`
	_, err := tx.ExecContext(ctx, q, t.EventID, t.Type, t.Quantity, t.PriceCents)
	return err
}

// DecrementTx atomically takes `amount` tickets from one tier, but only
// when enough stock remains.  The quantity >= ? guard makes this the
// authoritative stock check: a return of zero affected rows means the
// tier is missing or short, and the caller must roll back.
func (r *TicketRepo) DecrementTx(ctx context.Context, tx *sql.Tx, eventID uint64, tier string, amount uint32) (int64, error) {
	const q = `UPDATE tickets SET quantity = quantity - ? WHERE event_id = ? AND type = ? AND quantity >= ?`
	res, err := tx.ExecContext(ctx, q, amount, eventID, tier, amount)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
