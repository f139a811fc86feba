// Package booking implements the submission orchestrator: the strictly
// sequential pipeline of checks every booking attempt passes before the
// create call is issued, and the owner-gated delete path.
package booking

import (
	"context"
	"log"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Phishman81/ferienhaus-belegungsplan/internal/calendar"
	"github.com/Phishman81/ferienhaus-belegungsplan/internal/hub"
	"github.com/Phishman81/ferienhaus-belegungsplan/internal/model"
	"github.com/Phishman81/ferienhaus-belegungsplan/internal/queue"
	"github.com/Phishman81/ferienhaus-belegungsplan/internal/repository"
	"github.com/Phishman81/ferienhaus-belegungsplan/internal/security"
)

// MinSubmitDelay is the floor every successful validation waits before the
// create call goes out.
const MinSubmitDelay = 3000 * time.Millisecond

// Repo is the data-store collaborator the orchestrator writes through.
type Repo interface {
	ListByStart(ctx context.Context) ([]model.Booking, error)
	Create(ctx context.Context, b *model.Booking) error
	Delete(ctx context.Context, id string) error
}

// Events receives notifications after successful writes.  Implementations
// must not block the request path; delivery failures are theirs to log.
type Events interface {
	BookingCreated(ctx context.Context, ev queue.BookingCreatedEvent)
	BookingDeleted(ctx context.Context, ev queue.BookingDeletedEvent)
}

// SubmitRequest is the booking form payload.  The honeypot field keeps the
// original form's innocuous name.
type SubmitRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	From     string `json:"from" validate:"required,datetime=2006-01-02"`
	To       string `json:"to" validate:"required,datetime=2006-01-02"`
	Note     string `json:"note"`
	Honeypot string `json:"homepage"`
}

// Service owns the shared mutable state of the booking flow: the cached
// booking snapshot refreshed on every change, fed to the conflict checker
// and to hub subscribers.  The rate limiter, conflict checker and view
// tracker never mutate this state themselves.
type Service struct {
	repo    Repo
	limiter *security.RateLimiter
	hub     *hub.Hub
	events  Events
	check   *validator.Validate

	minDelay time.Duration
	wait     func(ctx context.Context, d time.Duration) error // injectable for tests

	mu       sync.RWMutex
	snapshot []model.Booking
}

// NewService wires the orchestrator.  events may be nil when no broker is
// configured.
func NewService(repo Repo, limiter *security.RateLimiter, h *hub.Hub, events Events) *Service {
	return &Service{
		repo:     repo,
		limiter:  limiter,
		hub:      h,
		events:   events,
		check:    validator.New(),
		minDelay: MinSubmitDelay,
		wait:     security.WaitMinimumDelay,
	}
}

// Refresh reloads the snapshot from the store and pushes it to all
// subscribers.  It is called once at startup and after every write.
func (s *Service) Refresh(ctx context.Context) error {
	bookings, err := s.repo.ListByStart(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.snapshot = bookings
	s.mu.Unlock()
	s.hub.Publish(bookings)
	return nil
}

// Snapshot returns the cached booking list.
func (s *Service) Snapshot() []model.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Submit runs one booking attempt through the full sequence: auth gate,
// field check, honeypot, range order, conflict check against the cached
// snapshot, rate limit, minimum delay, create.  Every rejection is terminal
// for the attempt.  The rate-limit attempt is recorded only after the
// create succeeded, so failed submissions never consume quota.
func (s *Service) Submit(ctx context.Context, user model.User, req SubmitRequest) (*model.Booking, error) {
	// 1. Authentication gate.
	if user.Email == "" {
		return nil, reject(KindAuth, "please sign in before saving a booking")
	}

	// 2. Field presence and shape.
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Note = strings.TrimSpace(req.Note)
	if err := s.check.Struct(req); err != nil {
		return nil, reject(KindValidation, "please fill in all required fields")
	}
	from, err := calendar.ParseDate(req.From)
	if err != nil {
		return nil, reject(KindValidation, "please fill in all required fields")
	}
	to, err := calendar.ParseDate(req.To)
	if err != nil {
		return nil, reject(KindValidation, "please fill in all required fields")
	}

	// 3. Honeypot.
	if !security.ValidateHoneypot(req.Honeypot) {
		return nil, reject(KindValidation, "security check failed")
	}

	// 4. Range order.
	if from.After(to) {
		return nil, reject(KindValidation, "the departure date must not be before the arrival date")
	}

	// 5. Conflict check against the cached snapshot.
	if calendar.HasConflict(s.Snapshot(), from, to) {
		return nil, reject(KindConflict, "the requested period overlaps an existing booking")
	}

	// 6. Rate limit, keyed by the submitter email.
	identifier := req.Email
	if identifier == "" {
		identifier = user.Email
	}
	decision := s.limiter.CanAttempt(ctx, identifier)
	if !decision.Allowed {
		minutes := int(math.Ceil(float64(decision.RetryIn) / float64(time.Minute)))
		return nil, reject(KindRateLimit, "too many bookings, please try again in %d minute(s)", minutes)
	}

	// 7. Minimum-delay floor before the create call goes out.
	if err := s.wait(ctx, s.minDelay); err != nil {
		return nil, internalError(err)
	}

	// 8. Create; quota is consumed only on success.
	b := &model.Booking{
		Name:       req.Name,
		Email:      req.Email,
		From:       calendar.StripTime(from),
		To:         calendar.StripTime(to),
		Note:       req.Note,
		OwnerEmail: user.Email,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		log.Printf("booking create failed: %v", err)
		return nil, internalError(err)
	}
	s.limiter.RecordAttempt(ctx, identifier)

	if err := s.Refresh(ctx); err != nil {
		log.Printf("snapshot refresh after create failed: %v", err)
	}
	if s.events != nil {
		s.events.BookingCreated(ctx, queue.BookingCreatedEvent{
			BookingID:  b.ID,
			Name:       b.Name,
			Email:      b.Email,
			From:       req.From,
			To:         req.To,
			Note:       b.Note,
			OwnerEmail: b.OwnerEmail,
			CreatedAt:  b.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return b, nil
}

// Delete removes a booking.  Only owner sessions may delete; everyone else
// gets a permission error.
func (s *Service) Delete(ctx context.Context, user model.User, id string) error {
	if !user.IsOwner {
		return reject(KindPermission, "only owners can delete bookings")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return reject(KindNotFound, "booking not found")
		}
		log.Printf("booking delete failed: %v", err)
		return internalError(err)
	}
	if err := s.Refresh(ctx); err != nil {
		log.Printf("snapshot refresh after delete failed: %v", err)
	}
	if s.events != nil {
		s.events.BookingDeleted(ctx, queue.BookingDeletedEvent{
			BookingID: id,
			DeletedBy: user.Email,
			DeletedAt: time.Now().UTC().Format(time.RFC3339),
		})
	}
	return nil
}
