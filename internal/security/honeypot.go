// Package security implements the pre-submission checks the booking form
// runs before any write is attempted: the honeypot field check, the
// sliding-window rate limiter, the minimum submit delay and the attestation
// guard.
package security

import "strings"

// ValidateHoneypot reports whether the hidden form field passed the
// anti-bot check.  A legitimate submission leaves the field untouched, so
// an empty or whitespace-only value passes; any real content marks the
// submission as automated.
func ValidateHoneypot(value string) bool {
	return strings.TrimSpace(value) == ""
}
