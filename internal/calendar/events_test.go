package calendar

import (
	"testing"
	"time"

	"github.com/Phishman81/ferienhaus-belegungsplan/internal/model"
)

func TestToEventsConvertsInclusiveEndToExclusive(t *testing.T) {
	bookings := []model.Booking{
		{
			ID:    "b1",
			Name:  "Familie Meier",
			Email: "meier@example.com",
			Note:  "late arrival",
			From:  day(2024, 6, 10),
			To:    day(2024, 6, 12),
		},
	}

	events := ToEvents(bookings)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	ev := events[0]
	if ev.Start != "2024-06-10" {
		t.Errorf("Start = %s, want 2024-06-10", ev.Start)
	}
	if ev.End != "2024-06-13" {
		t.Errorf("End = %s, want exclusive 2024-06-13", ev.End)
	}
	if ev.ExtendedProps.To != "2024-06-12" {
		t.Errorf("ExtendedProps.To = %s, want inclusive 2024-06-12", ev.ExtendedProps.To)
	}
	if !ev.AllDay || ev.Display != "block" {
		t.Errorf("event not shaped for all-day block rendering: %+v", ev)
	}
	if ev.Title != "Familie Meier" || ev.ExtendedProps.Note != "late arrival" {
		t.Errorf("tooltip data missing: %+v", ev)
	}
}

func TestToEventsDropsIncompleteBookings(t *testing.T) {
	bookings := []model.Booking{
		{ID: "no-end", From: day(2024, 6, 10)},
		{ID: "ok", Name: "x", From: day(2024, 6, 1), To: day(2024, 6, 2)},
		{ID: "no-dates"},
	}
	events := ToEvents(bookings)
	if len(events) != 1 || events[0].ID != "ok" {
		t.Errorf("incomplete bookings should be dropped, got %+v", events)
	}
}

func TestToEventsStripsTimeOfDay(t *testing.T) {
	bookings := []model.Booking{
		{
			ID:   "b1",
			From: time.Date(2024, 6, 10, 15, 4, 5, 0, time.Local),
			To:   time.Date(2024, 6, 10, 23, 59, 59, 0, time.Local),
		},
	}
	ev := ToEvents(bookings)[0]
	if ev.Start != "2024-06-10" || ev.End != "2024-06-11" {
		t.Errorf("time of day should not shift the painted days: %+v", ev)
	}
}
