package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Phishman81/ferienhaus-belegungsplan/internal/booking"
	"github.com/Phishman81/ferienhaus-belegungsplan/internal/hub"
	"github.com/Phishman81/ferienhaus-belegungsplan/internal/middleware"
	"github.com/Phishman81/ferienhaus-belegungsplan/internal/model"
)

// BookingHandler exposes the booking list, the submission flow, the
// owner-gated delete and the real-time stream.
type BookingHandler struct {
	Svc *booking.Service
	Hub *hub.Hub
}

func NewBookingHandler(svc *booking.Service, h *hub.Hub) *BookingHandler {
	return &BookingHandler{Svc: svc, Hub: h}
}

// bookingDTO is the wire shape of a booking; dates are plain calendar days.
type bookingDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	From       string `json:"from"`
	To         string `json:"to"`
	Note       string `json:"note,omitempty"`
	OwnerEmail string `json:"owner_email"`
	CreatedAt  string `json:"created_at,omitempty"`
}

func toDTO(b model.Booking) bookingDTO {
	dto := bookingDTO{
		ID:         b.ID,
		Name:       b.Name,
		Email:      b.Email,
		From:       b.From.Format("2006-01-02"),
		To:         b.To.Format("2006-01-02"),
		Note:       b.Note,
		OwnerEmail: b.OwnerEmail,
	}
	if !b.CreatedAt.IsZero() {
		dto.CreatedAt = b.CreatedAt.UTC().Format(time.RFC3339)
	}
	return dto
}

func toDTOs(bookings []model.Booking) []bookingDTO {
	out := make([]bookingDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toDTO(b))
	}
	return out
}

// List handles GET /v1/bookings and serves the cached snapshot, ordered by
// start date.
func (h *BookingHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, toDTOs(h.Svc.Snapshot()))
}

// Create handles POST /v1/bookings.  The request runs the full submission
// sequence; rejections come back as JSON with a user-facing message and a
// status code matching the error taxonomy.
func (h *BookingHandler) Create(c echo.Context) error {
	var req booking.SubmitRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	user := model.User{
		Email:   middleware.SessionEmail(c),
		IsOwner: middleware.SessionIsOwner(c),
	}

	b, err := h.Svc.Submit(c.Request().Context(), user, req)
	if err != nil {
		return writeSubmissionError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "booking saved, thank you",
		"booking": toDTO(*b),
	})
}

// Delete handles DELETE /v1/bookings/:id.  The route sits behind the owner
// middleware, but the service enforces the permission again; the gate must
// hold even for callers that bypass the router wiring.
func (h *BookingHandler) Delete(c echo.Context) error {
	user := model.User{
		Email:   middleware.SessionEmail(c),
		IsOwner: middleware.SessionIsOwner(c),
	}
	if err := h.Svc.Delete(c.Request().Context(), user, c.Param("id")); err != nil {
		return writeSubmissionError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "booking deleted"})
}

// Stream handles GET /v1/bookings/stream.  It delivers the full ordered
// booking list as a server-sent event on every change, starting with the
// current snapshot, until the client disconnects.
func (h *BookingHandler) Stream(c echo.Context) error {
	ch, unsubscribe := h.Hub.Subscribe()
	defer unsubscribe()

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-store")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case bookings, ok := <-ch:
			if !ok {
				return nil
			}
			payload, err := json.Marshal(toDTOs(bookings))
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(res, "event: bookings\ndata: %s\n\n", payload); err != nil {
				return err
			}
			res.Flush()
		}
	}
}

// writeSubmissionError maps the booking error taxonomy onto HTTP statuses.
func writeSubmissionError(c echo.Context, err error) error {
	var submitErr *booking.Error
	if !errors.As(err, &submitErr) {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "action failed, please try again later"})
	}
	status := http.StatusInternalServerError
	switch submitErr.Kind {
	case booking.KindAuth:
		status = http.StatusUnauthorized
	case booking.KindValidation:
		status = http.StatusBadRequest
	case booking.KindConflict:
		status = http.StatusConflict
	case booking.KindRateLimit:
		status = http.StatusTooManyRequests
	case booking.KindPermission:
		status = http.StatusForbidden
	case booking.KindNotFound:
		status = http.StatusNotFound
	case booking.KindInternal:
		status = http.StatusBadGateway
	}
	return c.JSON(status, echo.Map{"error": submitErr.Message})
}
