package config

import "os"

// AttestationConfig holds the site key and verification endpoint for the
// abuse-mitigation attestation provider.  A missing or placeholder site key
// disables the guard; that is a warning at startup, never an error.
type AttestationConfig struct {
	SiteKey   string
	VerifyURL string
}

// LoadAttestationConfig reads the attestation settings from the environment.
// Both values are optional.
func LoadAttestationConfig() AttestationConfig {
	return AttestationConfig{
		SiteKey:   os.Getenv("ATTESTATION_SITE_KEY"),
		VerifyURL: envStr("ATTESTATION_VERIFY_URL", "https://www.google.com/recaptcha/api/siteverify"),
	}
}
