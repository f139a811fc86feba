package utils // package utils provides helper functions for token creation and hashing

import (
	"crypto/rand"   // secure random number generation
	"crypto/sha256" // SHA-256 hashing for login tokens
	"encoding/hex"  // hex encoding functions
	"time"          // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// AccessToken represents a signed JWT session token along with its expiry.
// The Token field contains the JWT string.  Exp stores the expiration
// timestamp.  Session tokens are sent in the Authorization header when
// calling protected endpoints.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// LoginToken represents the raw one-time token embedded in a magic link.
// The Raw field is what gets mailed to the visitor.  In the database only a
// SHA-256 hash of the raw string is stored, so a leaked table cannot be
// used to sign in.
type LoginToken struct {
	Raw string    // raw token string embedded in the link
	Exp time.Time // UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT for a session.  The subject
// is the signed-in email and the owner claim carries the allowlist
// membership decided at sign-in time.  Standard exp/iat claims are included.
func NewAccessToken(secret, email string, isOwner bool, ttlMin int) (AccessToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":   email,
		"owner": isOwner,
		"exp":   exp.Unix(),
		"iat":   time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// NewLoginToken returns a cryptographically secure random token (raw) and
// its expiration time.  The ttlMin parameter controls how many minutes the
// emailed link stays valid.
func NewLoginToken(ttlMin int) (LoginToken, error) {
	raw, err := randomHex(32) // 32 bytes -> 64 hex chars
	if err != nil {
		return LoginToken{}, err
	}
	return LoginToken{
		Raw: raw,
		Exp: time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute),
	}, nil
}

// HashLoginRaw returns the SHA-256 hash of the raw login token as a hex
// string.  Only the hash is persisted.
func HashLoginRaw(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
