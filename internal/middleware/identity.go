package middleware

// identity.go holds helpers shared across middleware files for naming the
// caller.  Attendee routes are anonymous, so the rate limiter keys those
// requests as "anon" and organiser requests by their JWT subject.

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// currentUserID returns a stable identifier for the requester, suitable
// for rate-limit keys.  It reads the user_id stored by JWTAuth and falls
// back to "anon" for unauthenticated requests.
func currentUserID(c echo.Context) string {
	switch v := c.Get("user_id").(type) {
	case nil:
		return "anon"
	case string:
		if v != "" {
			return v
		}
		return "anon"
	default:
		return fmt.Sprint(v)
	}
}
