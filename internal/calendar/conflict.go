// Package calendar holds the calendar-side logic of the booking widget:
// overlap checking, the view-anchor bookkeeping used when switching views,
// and the conversion of bookings into display events.
package calendar

import (
	"time"

	"github.com/Phishman81/ferienhaus-belegungsplan/internal/model"
)

// HasConflict reports whether the proposed inclusive date range [from, to]
// overlaps any existing booking.  Dates are compared at day granularity;
// time-of-day is stripped before comparison.  Bookings with a missing
// endpoint cannot conflict and are skipped.
//
// The check is pure over the supplied list, which is expected to be the
// most recent subscription snapshot, not a fresh store query.
func HasConflict(existing []model.Booking, from, to time.Time) bool {
	newFrom := StripTime(from)
	newTo := StripTime(to)
	for _, b := range existing {
		if b.From.IsZero() || b.To.IsZero() {
			continue
		}
		start := StripTime(b.From)
		end := StripTime(b.To)
		// Inclusive ranges overlap iff newFrom <= end && newTo >= start.
		if !newFrom.After(end) && !newTo.Before(start) {
			return true
		}
	}
	return false
}

// StripTime truncates a timestamp to local midnight of its calendar day.
func StripTime(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
