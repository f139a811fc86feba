package security

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Phishman81/ferienhaus-belegungsplan/internal/config"
)

// AttestationGuard verifies abuse-mitigation attestation tokens against the
// provider's verification endpoint.  It is initialized once at startup with
// a site key; a missing or placeholder key logs a warning and leaves the
// guard disabled so the application keeps running without attestation.
type AttestationGuard struct {
	siteKey   string
	verifyURL string
	client    *http.Client
	enabled   bool
}

// NewAttestationGuard builds the guard from config.  Misconfiguration is
// logged, not fatal.
func NewAttestationGuard(cfg config.AttestationConfig) *AttestationGuard {
	g := &AttestationGuard{
		siteKey:   cfg.SiteKey,
		verifyURL: cfg.VerifyURL,
		client:    &http.Client{Timeout: 5 * time.Second},
	}
	if cfg.SiteKey == "" || strings.HasPrefix(cfg.SiteKey, "YOUR_") {
		log.Printf("attestation guard not initialized: site key missing")
		return g
	}
	if cfg.VerifyURL == "" {
		log.Printf("attestation guard not initialized: verify URL missing")
		return g
	}
	g.enabled = true
	return g
}

// Enabled reports whether tokens will be checked at all.
func (g *AttestationGuard) Enabled() bool { return g.enabled }

// Verify checks a client-supplied attestation token with the provider.  The
// boolean is the provider's verdict.  Transport or decoding failures return
// ok=true together with the error: the provider being unreachable must not
// lock visitors out, so callers log the error and let the request through.
func (g *AttestationGuard) Verify(ctx context.Context, token string) (bool, error) {
	if !g.enabled {
		return true, nil
	}
	form := url.Values{}
	form.Set("secret", g.siteKey)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return true, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.Do(req)
	if err != nil {
		return true, err
	}
	defer resp.Body.Close()

	var verdict struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		return true, err
	}
	return verdict.Success, nil
}
