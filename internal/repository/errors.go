// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// booking service and handlers to distinguish between failure scenarios
// without inspecting driver-specific errors.
package repository

import "errors"

// ErrNotFound is returned when the requested row does not exist, for
// example when deleting a booking that was already removed or redeeming a
// magic link whose token is unknown.
var ErrNotFound = errors.New("not found")

// ErrTokenExpired is returned when a magic-link token exists but is past
// its expiry or has already been redeemed.  Handlers should translate this
// into an HTTP 401 response.
var ErrTokenExpired = errors.New("token expired or already used")
