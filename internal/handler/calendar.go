package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Phishman81/ferienhaus-belegungsplan/internal/booking"
	"github.com/Phishman81/ferienhaus-belegungsplan/internal/calendar"
)

// CalendarHandler serves the widget-facing views: the painted event list
// and the view-anchor bookkeeping used when switching between the month and
// year layouts.
type CalendarHandler struct {
	Svc     *booking.Service
	Tracker *calendar.AnchorTracker
}

func NewCalendarHandler(svc *booking.Service, tracker *calendar.AnchorTracker) *CalendarHandler {
	return &CalendarHandler{Svc: svc, Tracker: tracker}
}

// Events handles GET /v1/calendar/events and returns the cached bookings as
// display events with exclusive end dates.
func (h *CalendarHandler) Events(c echo.Context) error {
	return c.JSON(http.StatusOK, calendar.ToEvents(h.Svc.Snapshot()))
}

type viewSettledReq struct {
	View  string `json:"view"`
	Focus string `json:"focus"`
}

// ViewSettled handles POST /v1/calendar/view.  The widget reports every
// view settle here; only month-grid settles update the anchor.  The
// response carries the focus date the calendar should land on in the
// reported view.
func (h *CalendarHandler) ViewSettled(c echo.Context) error {
	var req viewSettledReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	focus, err := parseFocus(req.Focus)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid focus date"})
	}
	if req.View == calendar.ViewMonth {
		h.Tracker.RecordAnchor(focus)
	}
	resolved := h.Tracker.ResolveAnchorFor(req.View, focus)
	return c.JSON(http.StatusOK, echo.Map{"focus": resolved.Format("2006-01-02")})
}

// Focus handles GET /v1/calendar/focus?view=...&focus=YYYY-MM-DD and
// returns the date the calendar should land on when switching to the given
// view.
func (h *CalendarHandler) Focus(c echo.Context) error {
	view := c.QueryParam("view")
	if view == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "view required"})
	}
	focus, err := parseFocus(c.QueryParam("focus"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid focus date"})
	}
	resolved := h.Tracker.ResolveAnchorFor(view, focus)
	return c.JSON(http.StatusOK, echo.Map{"focus": resolved.Format("2006-01-02")})
}

// parseFocus parses the focus date, defaulting to today when absent.
func parseFocus(value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}
	return calendar.ParseDate(value)
}
