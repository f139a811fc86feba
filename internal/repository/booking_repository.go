package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/Phishman81/ferienhaus-belegungsplan/internal/model"
)

// BookingRepo provides CRUD operations for calendar bookings.  Bookings are
// stored with day-granular inclusive date ranges; timestamps are stored in
// UTC.  The repository assigns identifiers itself so that callers receive
// the final record back on create, mirroring a document store that hands
// out IDs.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// ListByStart returns all bookings ordered by their start date ascending.
// This is the ordering the calendar consumes and the ordering delivered to
// subscription callbacks on every change.
func (r *BookingRepo) ListByStart(ctx context.Context) ([]model.Booking, error) {
	const q = `SELECT id, name, email, from_date, to_date, note, owner_email, created_at
	           FROM bookings ORDER BY from_date ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Booking
	for rows.Next() {
		var b model.Booking
		var note sql.NullString
		if err := rows.Scan(&b.ID, &b.Name, &b.Email, &b.From, &b.To, &note, &b.OwnerEmail, &b.CreatedAt); err != nil {
			return nil, err
		}
		if note.Valid {
			b.Note = note.String
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Create inserts a new booking.  It assigns a fresh UUID to the record and
// reads the row back so that the server-assigned creation timestamp is
// populated on the provided struct.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	b.ID = uuid.NewString()
	const q = `INSERT INTO bookings (id, name, email, from_date, to_date, note, owner_email)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, b.ID, b.Name, b.Email, b.From, b.To, b.Note, b.OwnerEmail); err != nil {
		return err
	}
	const sel = `SELECT created_at FROM bookings WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, b.ID).Scan(&b.CreatedAt)
}

// Delete removes a booking by ID.  ErrNotFound is returned when no row was
// deleted so handlers can answer 404 instead of pretending success.
func (r *BookingRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
