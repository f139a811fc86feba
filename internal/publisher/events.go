package publisher

import (
	"context"

	"github.com/Phishman81/ferienhaus-belegungsplan/internal/queue"
)

// QueueEvents adapts the publish functions to the booking service's Events
// interface.  Publish errors are already logged inside publish(); the
// request flow deliberately does not fail when the broker is down.
type QueueEvents struct{}

func (QueueEvents) BookingCreated(ctx context.Context, ev queue.BookingCreatedEvent) {
	_ = PublishBookingCreated(ctx, ev)
}

func (QueueEvents) BookingDeleted(ctx context.Context, ev queue.BookingDeletedEvent) {
	_ = PublishBookingDeleted(ctx, ev)
}
