package model

import "time"

// Organiser mirrors the `organisers` table.  Organisers register with a
// unique username, authenticate with a bcrypt-hashed password and own
// events and display settings.
type Organiser struct {
    ID           uint64    // organisers.id
    Username     string    // organisers.username (unique)
    PasswordHash string    // organisers.password_hash
    CreatedAt    time.Time // organisers.created_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Only the
// SHA-256 hash of the raw token is stored.
type RefreshToken struct {
    ID          uint64     // refresh_tokens.id
    OrganiserID uint64     // refresh_tokens.organiser_id
    TokenHash   string     // refresh_tokens.token_hash
    ExpiresAt   time.Time  // refresh_tokens.expires_at
    RevokedAt   *time.Time // refresh_tokens.revoked_at (nullable)
    CreatedAt   time.Time  // refresh_tokens.created_at
}
