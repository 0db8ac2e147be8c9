// Package repository defines error values shared across repositories.
// Sentinels let handlers pick the right HTTP status without inspecting
// SQL errors directly: ErrForbidden maps to 403, ErrInsufficientStock to
// a user-correctable 400, and per-entity not-found errors to 404.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource owned by a different organiser.
var ErrForbidden = errors.New("forbidden")

// ErrInsufficientStock is returned by the booking transaction when a
// conditional tier decrement matches no row, meaning the remaining
// quantity is below the requested amount.  The transaction is rolled
// back; neither the ledger nor the inventory is changed.
var ErrInsufficientStock = errors.New("insufficient ticket stock")
