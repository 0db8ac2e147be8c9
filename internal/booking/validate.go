package booking

import (
	"strconv"
	"strings"
)

// Reason tags a validation failure so handlers can pick a message
// without string-matching errors.
type Reason string

const (
	// ReasonIncompleteFields: full name or email missing.
	ReasonIncompleteFields Reason = "incomplete_fields"
	// ReasonNoTicketsSelected: both requested quantities are zero.
	ReasonNoTicketsSelected Reason = "no_tickets_selected"
	// ReasonInsufficientStock: a requested quantity exceeds the remaining
	// stock of its tier.
	ReasonInsufficientStock Reason = "insufficient_stock"
)

// ValidationError reports a user-correctable problem with a booking or
// checkout request.  Handlers render Message and map the error to a 400.
type ValidationError struct {
	Reason  Reason
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Request carries the attendee's form input for booking and checkout.
// Quantities are already coerced through ParseQty.
type Request struct {
	FullName      string
	Email         string
	NormalQty     uint32
	ConcessionQty uint32
}

// Validate applies the booking rules in order and returns the first
// violation, or nil when the request may proceed:
//
//	1. full name and email are non-empty
//	2. at least one ticket is requested
//	3. the normal request fits the remaining normal stock
//	4. the concession request fits the remaining concession stock
//
// Rules 3 and 4 are a snapshot pre-check for a friendly error message;
// the conditional decrement inside the booking transaction remains the
// authoritative stock check.
func Validate(req Request, av Availability) *ValidationError {
	if strings.TrimSpace(req.FullName) == "" || strings.TrimSpace(req.Email) == "" {
		return &ValidationError{
			Reason:  ReasonIncompleteFields,
			Message: "please complete all fields",
		}
	}
	if req.NormalQty+req.ConcessionQty == 0 {
		return &ValidationError{
			Reason:  ReasonNoTicketsSelected,
			Message: "please select at least one ticket",
		}
	}
	if req.NormalQty > av.NormalQty || req.ConcessionQty > av.ConcessionQty {
		return &ValidationError{
			Reason:  ReasonInsufficientStock,
			Message: "not enough tickets available",
		}
	}
	return nil
}

// ParseQty coerces free-form quantity input to a count.  Missing,
// non-numeric and negative values all become 0.  This mirrors the
// behaviour of the booking form end to end: "0 requested" and
// "unparseable" are deliberately the same thing, and the
// no-tickets-selected rule catches the all-zero case.
func ParseQty(s string) uint32 {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return uint32(n)
}
