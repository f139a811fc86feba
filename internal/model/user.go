package model

import "time"

// User is the session identity derived from a completed magic-link sign-in.
// There is no user table: identity is just an email, and the owner flag is
// computed by membership in the configured allowlist when the session token
// is issued.  A zero-value User (empty email) means "not signed in".
type User struct {
	Email   string
	IsOwner bool
}

// LoginToken models a row in the `login_tokens` table.  Each token backs one
// emailed magic link.  The plain token is never stored; only its SHA-256
// hash.  Tokens are single-use: UsedAt is set when the link is redeemed.
//
// Fields:
//
//	ID        – store-assigned identifier (UUID string).
//	Email     – address the link was sent to (normalized lowercase).
//	TokenHash – SHA-256 hex digest of the raw token value.
//	ExpiresAt – expiration timestamp of the link.
//	UsedAt    – when the link was redeemed (null while unused).
//	CreatedAt – timestamp of creation.
type LoginToken struct {
	ID        string     // login_tokens.id
	Email     string     // login_tokens.email
	TokenHash string     // login_tokens.token_hash
	ExpiresAt time.Time  // login_tokens.expires_at
	UsedAt    *time.Time // login_tokens.used_at (nullable)
	CreatedAt time.Time  // login_tokens.created_at
}
