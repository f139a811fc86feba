package calendar

import (
	"sync"
	"time"
)

// View names as the calendar widget reports them.
const (
	ViewMonth = "dayGridMonth"
	ViewYear  = "multiMonthYear"
)

// AnchorTracker remembers the last month the calendar settled on so that
// switching between month and year views lands on a sensible focus date.
// The anchor is updated only when the widget settles on the month grid and
// is read on every view-switch request.  State is in-memory only; it does
// not survive restarts.
type AnchorTracker struct {
	mu     sync.Mutex
	anchor time.Time
	set    bool
}

// RecordAnchor stores the given date as the last month anchor.  Call it
// whenever the calendar's active view is the month grid.
func (t *AnchorTracker) RecordAnchor(date time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.anchor = StripTime(date)
	t.set = true
}

// ResolveAnchorFor decides which date the calendar should focus when
// switching to targetView.
//
// For the yearly view the focus is January 1 of the anchor's year.  For any
// other view the focus is the first day of the anchor's month but in the
// *current* focus date's year, which guards against a stale year when
// returning from the year view.  If no anchor has been recorded yet, the
// current focus date's own month and year are used.
func (t *AnchorTracker) ResolveAnchorFor(targetView string, currentFocus time.Time) time.Time {
	t.mu.Lock()
	anchor, set := t.anchor, t.set
	t.mu.Unlock()

	focus := StripTime(currentFocus)
	if !set {
		anchor = focus
	}
	if targetView == ViewYear {
		year := anchor.Year()
		return time.Date(year, time.January, 1, 0, 0, 0, 0, focus.Location())
	}
	return time.Date(focus.Year(), anchor.Month(), 1, 0, 0, 0, 0, focus.Location())
}
