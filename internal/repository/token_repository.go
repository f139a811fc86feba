package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// TokenRepo persists/redeems magic-link login tokens (single 'token_hash'
// column, single use).
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

// StoreLogin inserts a login token hash row for the given email.
func (r *TokenRepo) StoreLogin(ctx context.Context, email, tokenHash string, exp time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO login_tokens (id, email, token_hash, expires_at) VALUES (?,?,?,?)",
		uuid.NewString(), email, tokenHash, exp)
	return err
}

// RedeemLogin returns the email bound to an unused, non-expired token and
// marks the token as used in the same statement so a link cannot be
// redeemed twice.  ErrNotFound is returned for unknown hashes and
// ErrTokenExpired for known but stale or already-used ones.
func (r *TokenRepo) RedeemLogin(ctx context.Context, tokenHash string) (string, error) {
	var (
		email     string
		expiresAt time.Time
		usedAt    sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT email, expires_at, used_at FROM login_tokens WHERE token_hash=? LIMIT 1",
		tokenHash).Scan(&email, &expiresAt, &usedAt)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	if usedAt.Valid || time.Now().UTC().After(expiresAt) {
		return "", ErrTokenExpired
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE login_tokens SET used_at=NOW() WHERE token_hash=? AND used_at IS NULL",
		tokenHash)
	if err != nil {
		return "", err
	}
	// A concurrent redeem may have won the race between SELECT and UPDATE.
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return "", ErrTokenExpired
	}
	return email, nil
}

// PurgeExpired deletes tokens whose expiry is in the past.  Called
// opportunistically; failures are not fatal.
func (r *TokenRepo) PurgeExpired(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM login_tokens WHERE expires_at < UTC_TIMESTAMP()")
	return err
}
