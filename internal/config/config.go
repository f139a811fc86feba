package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"strings" // strings normalizes the owner allowlist entries
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The owner allowlist is the set of email
// addresses that are granted delete rights on the shared calendar; it is
// normalized (trimmed, lowercased) once at load time so that membership
// checks can be case-insensitive string comparisons.
type Config struct {
	Env              string   // application environment (e.g. "dev", "prod")
	Port             string   // HTTP port to listen on
	DBUser           string   // database username
	DBPass           string   // database password (optional)
	DBHost           string   // database host address
	DBPort           string   // database port number
	DBName           string   // database name
	JWTSecret        string   // secret used to sign session JWTs
	AccessTTLMin     int      // session token time-to-live in minutes
	LoginTokenTTLMin int      // magic-link token time-to-live in minutes
	OwnerEmails      []string // normalized owner allowlist
	PublicURL        string   // base URL used when building magic links
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:              must("APP_ENV"),
		Port:             must("APP_PORT"),
		DBUser:           must("DB_USER"),
		DBPass:           os.Getenv("DB_PASS"), // empty password allowed
		DBHost:           must("DB_HOST"),
		DBPort:           must("DB_PORT"),
		DBName:           must("DB_NAME"),
		JWTSecret:        must("JWT_SECRET"),
		AccessTTLMin:     mustInt("ACCESS_TOKEN_TTL_MIN"),
		LoginTokenTTLMin: mustInt("LOGIN_TOKEN_TTL_MIN"),
		OwnerEmails:      parseOwnerList(must("OWNER_EMAILS")),
		PublicURL:        strings.TrimRight(must("PUBLIC_URL"), "/"),
	}
}

// IsOwner reports whether the given email belongs to the configured owner
// allowlist.  Comparison is case-insensitive; a blank email never matches.
func (c Config) IsOwner(email string) bool {
	e := strings.ToLower(strings.TrimSpace(email))
	if e == "" {
		return false
	}
	for _, owner := range c.OwnerEmails {
		if owner == e {
			return true
		}
	}
	return false
}

// parseOwnerList splits a comma separated allowlist into normalized,
// non-empty entries.
func parseOwnerList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if e := strings.ToLower(strings.TrimSpace(part)); e != "" {
			out = append(out, e)
		}
	}
	return out
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
