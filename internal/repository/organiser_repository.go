package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/event-ticketing/internal/model"
	"github.com/iliyamo/event-ticketing/internal/utils"
)

// OrganiserRepo manages rows in the 'organisers' table.
type OrganiserRepo struct{ DB *sql.DB }

func NewOrganiserRepo(db *sql.DB) *OrganiserRepo { return &OrganiserRepo{DB: db} }

var ErrUsernameExists = errors.New("username already exists")

// Create hashes the password and inserts the organiser, returning its ID.
func (r *OrganiserRepo) Create(ctx context.Context, username, password string, cost int) (uint64, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO organisers (username, password_hash) VALUES (?,?)",
		username, hash)
	if err != nil {
		// MySQL duplicate-key error code is 1062.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrUsernameExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername fetches an organiser by normalized username.
func (r *OrganiserRepo) GetByUsername(ctx context.Context, username string) (model.Organiser, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	var o model.Organiser
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,username,password_hash,created_at FROM organisers WHERE username=? LIMIT 1",
		username).Scan(&o.ID, &o.Username, &o.PasswordHash, &o.CreatedAt)
	return o, err
}

// GetByID fetches an organiser by id.
func (r *OrganiserRepo) GetByID(ctx context.Context, id uint64) (model.Organiser, error) {
	var o model.Organiser
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,username,password_hash,created_at FROM organisers WHERE id=? LIMIT 1",
		id).Scan(&o.ID, &o.Username, &o.PasswordHash, &o.CreatedAt)
	return o, err
}
