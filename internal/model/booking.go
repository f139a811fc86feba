package model

import "time"

// Booking records one reserved date range on the shared calendar.  A booking
// is immutable once created except for deletion by an owner.
//
// Fields:
//
//	ID         – store-assigned identifier (UUID string).
//	Name       – display name shown on the calendar.
//	Email      – submitter's email address (normalized lowercase).
//	From, To   – inclusive calendar dates of the stay; From <= To is
//	             enforced at submission time, not here.
//	Note       – optional free-text note.
//	OwnerEmail – email of the signed-in session that created the booking.
//	CreatedAt  – server-assigned creation timestamp.
type Booking struct {
	ID         string    // bookings.id
	Name       string    // bookings.name
	Email      string    // bookings.email
	From       time.Time // bookings.from_date
	To         time.Time // bookings.to_date
	Note       string    // bookings.note
	OwnerEmail string    // bookings.owner_email
	CreatedAt  time.Time // bookings.created_at
}
