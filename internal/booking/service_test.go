package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Phishman81/ferienhaus-belegungsplan/internal/config"
	"github.com/Phishman81/ferienhaus-belegungsplan/internal/hub"
	"github.com/Phishman81/ferienhaus-belegungsplan/internal/model"
	"github.com/Phishman81/ferienhaus-belegungsplan/internal/queue"
	"github.com/Phishman81/ferienhaus-belegungsplan/internal/security"
)

// ────────────────────────────────────────────────
// Fakes
// ────────────────────────────────────────────────

type fakeRepo struct {
	bookings  []model.Booking
	createErr error
	created   []model.Booking
	deleted   []string
	nextID    int
}

func (r *fakeRepo) ListByStart(ctx context.Context) ([]model.Booking, error) {
	return append([]model.Booking(nil), r.bookings...), nil
}

func (r *fakeRepo) Create(ctx context.Context, b *model.Booking) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	b.ID = fmt.Sprintf("b-%d", r.nextID)
	b.CreatedAt = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	r.created = append(r.created, *b)
	r.bookings = append(r.bookings, *b)
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	r.deleted = append(r.deleted, id)
	return nil
}

type fakeEvents struct {
	created []queue.BookingCreatedEvent
	deleted []queue.BookingDeletedEvent
}

func (e *fakeEvents) BookingCreated(ctx context.Context, ev queue.BookingCreatedEvent) {
	e.created = append(e.created, ev)
}
func (e *fakeEvents) BookingDeleted(ctx context.Context, ev queue.BookingDeletedEvent) {
	e.deleted = append(e.deleted, ev)
}

type testEnv struct {
	svc    *Service
	repo   *fakeRepo
	store  *security.MemoryStore
	events *fakeEvents
	waited []time.Duration
}

func newTestEnv(t *testing.T, existing []model.Booking) *testEnv {
	t.Helper()
	env := &testEnv{
		repo:   &fakeRepo{bookings: existing},
		store:  security.NewMemoryStore(),
		events: &fakeEvents{},
	}
	limiter := security.NewRateLimiter(config.RateLimitConfig{Limit: 3, Window: time.Hour}, env.store)
	env.svc = NewService(env.repo, limiter, hub.New(), env.events)
	env.svc.wait = func(ctx context.Context, d time.Duration) error {
		env.waited = append(env.waited, d)
		return nil
	}
	if err := env.svc.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	return env
}

func validRequest() SubmitRequest {
	return SubmitRequest{
		Name:  "Familie Meier",
		Email: "meier@example.com",
		From:  "2024-06-10",
		To:    "2024-06-12",
		Note:  "late arrival",
	}
}

var signedIn = model.User{Email: "meier@example.com"}

func submitKind(t *testing.T, err error) Kind {
	t.Helper()
	var se *Error
	if !errors.As(err, &se) {
		t.Fatalf("expected *booking.Error, got %v", err)
	}
	return se.Kind
}

func quotaUsed(t *testing.T, env *testEnv, identifier string) int {
	t.Helper()
	attempts, err := env.store.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return len(attempts[identifier])
}

// ────────────────────────────────────────────────
// Submission scenarios
// ────────────────────────────────────────────────

func TestSubmitSuccess(t *testing.T) {
	env := newTestEnv(t, nil)

	b, err := env.svc.Submit(context.Background(), signedIn, validRequest())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if len(env.repo.created) != 1 {
		t.Fatalf("create calls = %d, want 1", len(env.repo.created))
	}
	if len(env.waited) != 1 || env.waited[0] < 3000*time.Millisecond {
		t.Errorf("minimum delay not enforced: %v", env.waited)
	}
	if b.ID == "" || b.CreatedAt.IsZero() {
		t.Errorf("store-assigned fields missing: %+v", b)
	}
	if b.OwnerEmail != signedIn.Email {
		t.Errorf("OwnerEmail = %s, want %s", b.OwnerEmail, signedIn.Email)
	}
	if got := quotaUsed(t, env, "meier@example.com"); got != 1 {
		t.Errorf("quota used = %d, want 1", got)
	}
	if len(env.events.created) != 1 {
		t.Errorf("created events = %d, want 1", len(env.events.created))
	}
	// The snapshot must already contain the new booking.
	if len(env.svc.Snapshot()) != 1 {
		t.Errorf("snapshot not refreshed after create")
	}
}

func TestSubmitRejectsWithoutSession(t *testing.T) {
	env := newTestEnv(t, nil)

	_, err := env.svc.Submit(context.Background(), model.User{}, validRequest())
	if submitKind(t, err) != KindAuth {
		t.Errorf("kind = %v, want KindAuth", submitKind(t, err))
	}
	if len(env.repo.created) != 0 || len(env.waited) != 0 {
		t.Error("nothing may run after the auth gate rejects")
	}
}

func TestSubmitFieldValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SubmitRequest)
	}{
		{name: "missing name", mutate: func(r *SubmitRequest) { r.Name = "  " }},
		{name: "missing email", mutate: func(r *SubmitRequest) { r.Email = "" }},
		{name: "malformed email", mutate: func(r *SubmitRequest) { r.Email = "not-an-email" }},
		{name: "missing from", mutate: func(r *SubmitRequest) { r.From = "" }},
		{name: "malformed date", mutate: func(r *SubmitRequest) { r.To = "12.06.2024" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, nil)
			req := validRequest()
			tt.mutate(&req)

			_, err := env.svc.Submit(context.Background(), signedIn, req)
			if submitKind(t, err) != KindValidation {
				t.Errorf("kind = %v, want KindValidation", submitKind(t, err))
			}
			if len(env.repo.created) != 0 {
				t.Error("no create call may be issued for invalid fields")
			}
		})
	}
}

func TestSubmitRejectsTrippedHoneypot(t *testing.T) {
	env := newTestEnv(t, nil)
	req := validRequest()
	req.Honeypot = "http://spam.example"

	_, err := env.svc.Submit(context.Background(), signedIn, req)
	if submitKind(t, err) != KindValidation {
		t.Errorf("kind = %v, want KindValidation", submitKind(t, err))
	}
}

func TestSubmitRejectsReversedRange(t *testing.T) {
	env := newTestEnv(t, nil)
	req := validRequest()
	req.From, req.To = req.To, req.From

	_, err := env.svc.Submit(context.Background(), signedIn, req)
	if submitKind(t, err) != KindValidation {
		t.Errorf("kind = %v, want KindValidation", submitKind(t, err))
	}
}

func TestSubmitRejectsOverlapBeforeAnyNetworkCall(t *testing.T) {
	existing := []model.Booking{{
		ID:   "b-existing",
		From: time.Date(2024, 6, 11, 0, 0, 0, 0, time.Local),
		To:   time.Date(2024, 6, 15, 0, 0, 0, 0, time.Local),
	}}
	env := newTestEnv(t, existing)

	_, err := env.svc.Submit(context.Background(), signedIn, validRequest())
	if submitKind(t, err) != KindConflict {
		t.Errorf("kind = %v, want KindConflict", submitKind(t, err))
	}
	if len(env.repo.created) != 0 {
		t.Error("overlap must be rejected before the create call")
	}
	if len(env.waited) != 0 {
		t.Error("minimum delay must not run for rejected submissions")
	}
	if got := quotaUsed(t, env, "meier@example.com"); got != 0 {
		t.Errorf("rejected submission consumed quota: %d", got)
	}
}

func TestSubmitRejectsFourthAttemptWithinWindow(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	// Three successful submissions for disjoint ranges exhaust the quota.
	days := [][2]string{{"2024-06-01", "2024-06-02"}, {"2024-06-04", "2024-06-05"}, {"2024-06-07", "2024-06-08"}}
	for _, d := range days {
		req := validRequest()
		req.From, req.To = d[0], d[1]
		if _, err := env.svc.Submit(ctx, signedIn, req); err != nil {
			t.Fatalf("setup submit failed: %v", err)
		}
	}

	req := validRequest()
	req.From, req.To = "2024-06-20", "2024-06-21"
	_, err := env.svc.Submit(ctx, signedIn, req)
	if submitKind(t, err) != KindRateLimit {
		t.Fatalf("kind = %v, want KindRateLimit", submitKind(t, err))
	}
	if !strings.Contains(err.Error(), "minute") {
		t.Errorf("rate-limit message should carry a retry time in minutes: %q", err.Error())
	}
	if len(env.repo.created) != 3 {
		t.Errorf("create calls = %d, want 3 (no call for the blocked attempt)", len(env.repo.created))
	}
}

func TestSubmitDoesNotConsumeQuotaWhenCreateFails(t *testing.T) {
	env := newTestEnv(t, nil)
	env.repo.createErr = errors.New("store unreachable")

	_, err := env.svc.Submit(context.Background(), signedIn, validRequest())
	if submitKind(t, err) != KindInternal {
		t.Fatalf("kind = %v, want KindInternal", submitKind(t, err))
	}
	if !strings.Contains(err.Error(), "store unreachable") {
		t.Errorf("collaborator message should surface: %q", err.Error())
	}
	if got := quotaUsed(t, env, "meier@example.com"); got != 0 {
		t.Errorf("failed create consumed quota: %d", got)
	}
}

func TestSubmitFallsBackToGenericMessage(t *testing.T) {
	e := internalError(errors.New(""))
	if e.Message != genericFailure {
		t.Errorf("Message = %q, want generic fallback", e.Message)
	}
}

// ────────────────────────────────────────────────
// Deletion
// ────────────────────────────────────────────────

func TestDeleteRequiresOwner(t *testing.T) {
	env := newTestEnv(t, nil)

	err := env.svc.Delete(context.Background(), model.User{Email: "guest@example.com"}, "b-1")
	if submitKind(t, err) != KindPermission {
		t.Errorf("kind = %v, want KindPermission", submitKind(t, err))
	}
	if len(env.repo.deleted) != 0 {
		t.Error("non-owner delete must not reach the store")
	}
}

func TestDeleteByOwner(t *testing.T) {
	env := newTestEnv(t, []model.Booking{{ID: "b-1"}})
	owner := model.User{Email: "owner@example.com", IsOwner: true}

	if err := env.svc.Delete(context.Background(), owner, "b-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(env.repo.deleted) != 1 || env.repo.deleted[0] != "b-1" {
		t.Errorf("deleted = %v, want [b-1]", env.repo.deleted)
	}
	if len(env.events.deleted) != 1 || env.events.deleted[0].DeletedBy != owner.Email {
		t.Errorf("deletion event missing or wrong: %+v", env.events.deleted)
	}
}
