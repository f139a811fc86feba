// Package hub fans the current booking list out to in-process subscribers.
// It is the real-time subscription surface of the service: every change
// delivers the full ordered booking list to each subscriber, mirroring a
// document-store snapshot listener.  Cross-process consumers get their
// events from the message broker instead.
package hub

import (
	"sync"

	"github.com/Phishman81/ferienhaus-belegungsplan/internal/model"
)

// Hub broadcasts booking snapshots.  Subscribers receive the latest known
// snapshot immediately on subscribe and the full list again on every
// publish.  Slow subscribers never block a publish: a pending undelivered
// snapshot is simply replaced by the newer one.
type Hub struct {
	mu      sync.Mutex
	subs    map[int]chan []model.Booking
	nextID  int
	last    []model.Booking
	hasLast bool
}

// New returns an empty hub.
func New() *Hub {
	return &Hub{subs: map[int]chan []model.Booking{}}
}

// Subscribe registers a new listener.  The returned channel is buffered
// with one slot and always carries the most recent snapshot.  The returned
// function unsubscribes and closes the channel; it is safe to call more
// than once.
func (h *Hub) Subscribe() (<-chan []model.Booking, func()) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	ch := make(chan []model.Booking, 1)
	h.subs[id] = ch
	if h.hasLast {
		ch <- h.last
	}
	h.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			h.mu.Lock()
			if _, ok := h.subs[id]; ok {
				delete(h.subs, id)
				close(ch)
			}
			h.mu.Unlock()
		})
	}
	return ch, unsubscribe
}

// Publish delivers the snapshot to every subscriber and remembers it for
// future subscribers.
func (h *Hub) Publish(bookings []model.Booking) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = bookings
	h.hasLast = true
	for _, ch := range h.subs {
		// Drop a stale undelivered snapshot before queueing the new one.
		select {
		case <-ch:
		default:
		}
		ch <- bookings
	}
}
