// Package repository contains data access logic for the ticketing domain.
// This file covers the `events` table.  Events belong to organisers and
// carry a draft/published status; attendee-facing queries only ever see
// published rows.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// ErrEventNotFound indicates that an event does not exist or, for
// attendee-facing lookups, is not published.
var ErrEventNotFound = errors.New("event not found")

// EventRepo manages persistence for events.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo constructs an EventRepo with the given DB handle.
func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{db: db}
}

// DB exposes the underlying sql.DB so callers can begin transactions
// spanning multiple repositories (event creation inserts the event row
// and both tier rows in one transaction).
func (r *EventRepo) DB() *sql.DB {
	return r.db
}

// CreateTx inserts a new draft event within the caller's transaction and
// populates the generated ID and DB-default fields on the given struct.
// The caller must commit or roll back.
func (r *EventRepo) CreateTx(ctx context.Context, tx *sql.Tx, e *model.Event) error {
	const q = `INSERT INTO events (organiser_id, title, description, date, status) VALUES (?, ?, ?, ?, 'draft')`
	res, err := tx.ExecContext(ctx, q, e.OrganiserID, e.Title, e.Description, e.Date)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	const sel = `SELECT id, organiser_id, title, description, date, status, created_at, published_at FROM events WHERE id = ?`
	var publishedAt sql.NullTime
	if err := tx.QueryRowContext(ctx, sel, e.ID).Scan(
		&e.ID, &e.OrganiserID, &e.Title, &e.Description, &e.Date, &e.Status, &e.CreatedAt, &publishedAt,
	); err != nil {
		return err
	}
	if publishedAt.Valid {
		t := publishedAt.Time
		e.PublishedAt = &t
	}
	return nil
}

// GetForOrganiser returns a single event after verifying ownership.  It
// returns ErrEventNotFound when no row exists and ErrForbidden when the
// event belongs to a different organiser.
func (r *EventRepo) GetForOrganiser(ctx context.Context, eventID, organiserID uint64) (*model.Event, error) {
	const q = `SELECT id, organiser_id, title, description, date, status, created_at, published_at FROM events WHERE id = ?`
	var e model.Event
	var publishedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, q, eventID).Scan(
		&e.ID, &e.OrganiserID, &e.Title, &e.Description, &e.Date, &e.Status, &e.CreatedAt, &publishedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if e.OrganiserID != organiserID {
		return nil, ErrForbidden
	}
	if publishedAt.Valid {
		t := publishedAt.Time
		e.PublishedAt = &t
	}
	return &e, nil
}

// ListByOrganiser returns all events of one organiser, newest first.
// Drafts and published events are returned together; callers split them
// for dashboard rendering.
func (r *EventRepo) ListByOrganiser(ctx context.Context, organiserID uint64) ([]model.Event, error) {
	const q = `SELECT id, organiser_id, title, description, date, status, created_at, published_at
	           FROM events WHERE organiser_id = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, organiserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]model.Event, 0)
	for rows.Next() {
		var e model.Event
		var publishedAt sql.NullTime
		if err := rows.Scan(&e.ID, &e.OrganiserID, &e.Title, &e.Description, &e.Date, &e.Status, &e.CreatedAt, &publishedAt); err != nil {
			return nil, err
		}
		if publishedAt.Valid {
			t := publishedAt.Time
			e.PublishedAt = &t
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// UpdateTx updates title, description and date within the caller's
// transaction.  The WHERE clause is owner-scoped; callers should verify
// ownership first via GetForOrganiser to distinguish 403 from 404.
func (r *EventRepo) UpdateTx(ctx context.Context, tx *sql.Tx, e *model.Event) error {
	const q = `UPDATE events SET title = ?, description = ?, date = ? WHERE id = ? AND organiser_id = ?`
	_, err := tx.ExecContext(ctx, q, e.Title, e.Description, e.Date, e.ID, e.OrganiserID)
	return err
}

// Publish transitions an event to published.  The transition is one-way
// and idempotent in effect: published_at is only set the first time.
// Returns ErrEventNotFound for unknown events and ErrForbidden when the
// caller does not own the event.
func (r *EventRepo) Publish(ctx context.Context, eventID, organiserID uint64) error {
	var ownerID uint64
	err := r.db.QueryRowContext(ctx, `SELECT organiser_id FROM events WHERE id = ?`, eventID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrEventNotFound
		}
		return err
	}
	if ownerID != organiserID {
		return ErrForbidden
	}
	const q = `UPDATE events SET status = 'published', published_at = COALESCE(published_at, UTC_TIMESTAMP()) WHERE id = ?`
	_, err = r.db.ExecContext(ctx, q, eventID)
	return err
}

// Delete removes an event owned by the organiser.  Tier and booking rows
// go with it via ON DELETE CASCADE.  Returns ErrEventNotFound or
// ErrForbidden like Publish.
func (r *EventRepo) Delete(ctx context.Context, eventID, organiserID uint64) error {
	var ownerID uint64
	err := r.db.QueryRowContext(ctx, `SELECT organiser_id FROM events WHERE id = ?`, eventID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrEventNotFound
		}
		return err
	}
	if ownerID != organiserID {
		return ErrForbidden
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, eventID)
	return err
}

// PublishedEventDetail is an event row joined with organiser display
// information for attendee-facing pages.  Organiser name and company come
// from the settings table and may be empty when the organiser has not
// filled in their settings yet.
type PublishedEventDetail struct {
	ID                uint64     `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Date              time.Time  `json:"date"`
	PublishedAt       *time.Time `json:"published_at,omitempty"`
	OrganiserUsername string     `json:"organiser_username"`
	OrganiserName     string     `json:"organiser_name,omitempty"`
	OrganiserCompany  string     `json:"organiser_company,omitempty"`
}

// GetPublished returns a single published event with organiser display
// info.  Draft and unknown events both return ErrEventNotFound so
// attendees cannot distinguish hidden events from missing ones.
func (r *EventRepo) GetPublished(ctx context.Context, eventID uint64) (*PublishedEventDetail, error) {
	const q = `SELECT e.id, e.title, e.description, e.date, e.published_at,
	                  o.username, s.organiser_name, s.organiser_company
	           FROM events e
	           JOIN organisers o ON o.id = e.organiser_id
	           LEFT JOIN settings s ON s.organiser_id = e.organiser_id
	           WHERE e.id = ? AND e.status = 'published'`
	var d PublishedEventDetail
	var publishedAt sql.NullTime
	var orgName, orgCompany sql.NullString
	err := r.db.QueryRowContext(ctx, q, eventID).Scan(
		&d.ID, &d.Title, &d.Description, &d.Date, &publishedAt,
		&d.OrganiserUsername, &orgName, &orgCompany,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if publishedAt.Valid {
		t := publishedAt.Time
		d.PublishedAt = &t
	}
	d.OrganiserName = orgName.String
	d.OrganiserCompany = orgCompany.String
	return &d, nil
}

// ListPublished returns all published events ordered by date ascending,
// each joined with organiser display info.
func (r *EventRepo) ListPublished(ctx context.Context) ([]PublishedEventDetail, error) {
	const q = `SELECT e.id, e.title, e.description, e.date, e.published_at,
	                  o.username, s.organiser_name, s.organiser_company
	           FROM events e
	           JOIN organisers o ON o.id = e.organiser_id
	           LEFT JOIN settings s ON s.organiser_id = e.organiser_id
	           WHERE e.status = 'published'
	           ORDER BY e.date ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]PublishedEventDetail, 0)
	for rows.Next() {
		var d PublishedEventDetail
		var publishedAt sql.NullTime
		var orgName, orgCompany sql.NullString
		if err := rows.Scan(
			&d.ID, &d.Title, &d.Description, &d.Date, &publishedAt,
			&d.OrganiserUsername, &orgName, &orgCompany,
		); err != nil {
			return nil, err
		}
		if publishedAt.Valid {
			t := publishedAt.Time
			d.PublishedAt = &t
		}
		d.OrganiserName = orgName.String
		d.OrganiserCompany = orgCompany.String
		details = append(details, d)
	}
	return details, rows.Err()
}
