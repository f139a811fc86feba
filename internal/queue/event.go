// Package queue defines message payloads exchanged over the message broker
// and the background consumer that processes them.
package queue

// Queue names.  All queues are durable and carry persistent JSON messages.
const (
	BookingCreatedQueue = "booking.created"
	BookingDeletedQueue = "booking.deleted"
	LoginLinkQueue      = "login.link"
)

// BookingCreatedEvent is published after a booking has been stored.  It
// carries enough information for downstream consumers to log or notify
// without querying the database.  Dates are YYYY-MM-DD, timestamps RFC3339.
type BookingCreatedEvent struct {
	BookingID  string `json:"booking_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	From       string `json:"from"`
	To         string `json:"to"`
	Note       string `json:"note,omitempty"`
	OwnerEmail string `json:"owner_email"`
	CreatedAt  string `json:"created_at"`
}

// BookingDeletedEvent is published after an owner has removed a booking.
type BookingDeletedEvent struct {
	BookingID string `json:"booking_id"`
	DeletedBy string `json:"deleted_by"`
	DeletedAt string `json:"deleted_at"`
}

// LoginLinkEvent is published when a visitor requests a magic link.  The
// consumer is responsible for delivering the link; keeping delivery out of
// the request path means a slow mail provider never blocks the endpoint.
type LoginLinkEvent struct {
	Email     string `json:"email"`
	Link      string `json:"link"`
	ExpiresAt string `json:"expires_at"`
}
