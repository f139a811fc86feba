package calendar

import (
	"time"

	"github.com/Phishman81/ferienhaus-belegungsplan/internal/model"
)

const dateLayout = "2006-01-02"

// eventColor is the block color bookings are painted with.
const eventColor = "#c53030"

// Event is a booking shaped for the calendar widget.  Dates are plain
// calendar days; End is exclusive, as the widget expects, so a stay through
// June 12 renders with End June 13.
type Event struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Start           string     `json:"start"`
	End             string     `json:"end"`
	AllDay          bool       `json:"allDay"`
	Display         string     `json:"display"`
	BackgroundColor string     `json:"backgroundColor"`
	BorderColor     string     `json:"borderColor"`
	ExtendedProps   EventProps `json:"extendedProps"`
}

// EventProps carries the tooltip data: submitter, note and the original
// inclusive range.
type EventProps struct {
	Email string `json:"email"`
	Note  string `json:"note"`
	From  string `json:"from"`
	To    string `json:"to"`
}

// ToEvents converts bookings into display events.  Bookings with a missing
// endpoint are dropped; they cannot be painted.
func ToEvents(bookings []model.Booking) []Event {
	events := make([]Event, 0, len(bookings))
	for _, b := range bookings {
		if b.From.IsZero() || b.To.IsZero() {
			continue
		}
		start := StripTime(b.From)
		end := StripTime(b.To)
		events = append(events, Event{
			ID:              b.ID,
			Title:           b.Name,
			Start:           start.Format(dateLayout),
			End:             end.AddDate(0, 0, 1).Format(dateLayout), // inclusive -> exclusive
			AllDay:          true,
			Display:         "block",
			BackgroundColor: eventColor,
			BorderColor:     eventColor,
			ExtendedProps: EventProps{
				Email: b.Email,
				Note:  b.Note,
				From:  start.Format(dateLayout),
				To:    end.Format(dateLayout),
			},
		})
	}
	return events
}

// ParseDate parses a YYYY-MM-DD form value into a local calendar date.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, value, time.Local)
}
