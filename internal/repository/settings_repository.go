package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// SettingsRepo manages organiser display settings.  One row per
// organiser, written with an upsert so callers never care whether the
// organiser has saved settings before.
type SettingsRepo struct {
	db *sql.DB
}

// NewSettingsRepo constructs a SettingsRepo with the given DB handle.
func NewSettingsRepo(db *sql.DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// GetByOrganiser returns the settings row for one organiser.  When the
// organiser has never saved settings an empty struct is returned rather
// than an error; attendee pages fall back to blanks anyway.
func (r *SettingsRepo) GetByOrganiser(ctx context.Context, organiserID uint64) (model.Settings, error) {
	const q = `SELECT organiser_id, site_title, organiser_name, organiser_company FROM settings WHERE organiser_id = ?`
	var s model.Settings
	err := r.db.QueryRowContext(ctx, q, organiserID).Scan(&s.OrganiserID, &s.SiteTitle, &s.OrganiserName, &s.OrganiserCompany)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Settings{OrganiserID: organiserID}, nil
		}
		return model.Settings{}, err
	}
	return s, nil
}

// Upsert writes the settings row for one organiser.
func (r *SettingsRepo) Upsert(ctx context.Context, s model.Settings) error {
	const q = `INSERT INTO settings (organiser_id, site_title, organiser_name, organiser_company) VALUES (?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE site_title = VALUES(site_title), organiser_name = VALUES(organiser_name),
	           organiser_company = VALUES(organiser_company)`
	_, err := r.db.ExecContext(ctx, q, s.OrganiserID, s.SiteTitle, s.OrganiserName, s.OrganiserCompany)
	return err
}
