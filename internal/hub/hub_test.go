package hub

import (
	"testing"

	"github.com/Phishman81/ferienhaus-belegungsplan/internal/model"
)

func TestSubscribeReceivesPublishedSnapshot(t *testing.T) {
	h := New()
	ch, unsubscribe := h.Subscribe()
	defer unsubscribe()

	h.Publish([]model.Booking{{ID: "b-1"}})

	got := <-ch
	if len(got) != 1 || got[0].ID != "b-1" {
		t.Errorf("received %+v, want the published snapshot", got)
	}
}

func TestLateSubscriberGetsLastSnapshot(t *testing.T) {
	h := New()
	h.Publish([]model.Booking{{ID: "b-1"}, {ID: "b-2"}})

	ch, unsubscribe := h.Subscribe()
	defer unsubscribe()

	got := <-ch
	if len(got) != 2 {
		t.Errorf("late subscriber got %d bookings, want 2", len(got))
	}
}

func TestSlowSubscriberSeesNewestSnapshot(t *testing.T) {
	h := New()
	ch, unsubscribe := h.Subscribe()
	defer unsubscribe()

	// Two publishes without a read in between: the stale snapshot is
	// replaced, never queued behind.
	h.Publish([]model.Booking{{ID: "old"}})
	h.Publish([]model.Booking{{ID: "new"}})

	got := <-ch
	if len(got) != 1 || got[0].ID != "new" {
		t.Errorf("received %+v, want only the newest snapshot", got)
	}
}

func TestUnsubscribeClosesChannelAndIsIdempotent(t *testing.T) {
	h := New()
	ch, unsubscribe := h.Subscribe()

	unsubscribe()
	unsubscribe() // second call must not panic

	if _, ok := <-ch; ok {
		t.Error("channel should be closed after unsubscribe")
	}

	// Publishing after unsubscribe must not panic either.
	h.Publish([]model.Booking{{ID: "b-1"}})
}
