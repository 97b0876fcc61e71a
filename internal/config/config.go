package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port string

	DBHost string
	DBPort string
	DBName string
	DBUser string
	DBPass string

	// DBMaxOpenConns is the maximum number of open connections to the database (default 25).
	DBMaxOpenConns int
	// DBMaxIdleConns is the maximum number of idle connections (default 5).
	DBMaxIdleConns int

	// SecretKey signs session material (cookies, CSRF). Separate from the token secret.
	SecretKey string
	// JWTSecret signs access tokens. Set JWT_SECRET_KEY in any real deployment.
	JWTSecret string

	// JWTExpireDays is the access-token lifetime in days (default 7). Set via JWT_EXPIRE_DAYS.
	JWTExpireDays int

	// Env is "dev" (default) or "prod". When "prod", default secrets are flagged at startup.
	Env string

	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	// When empty, the API listens with plain HTTP.
	TLSCertFile string
	TLSKeyFile  string

	// LogFormat is "text" (default) or "json" for structured logging.
	LogFormat string

	// CORSAllowedOrigins is a list of origins allowed for CORS (e.g. https://app.example.com, http://localhost:3000).
	// Set via CORS_ALLOWED_ORIGINS (comma-separated). When empty, no CORS headers are sent (same-origin only).
	CORSAllowedOrigins []string
}

// DefaultSecretKey and DefaultJWTSecret are development fallbacks. Startup never
// fails on a missing secret, but prod deployments must override both.
const (
	DefaultSecretKey = "dev-session-secret"
	DefaultJWTSecret = "dev-token-secret"
)

func Load() Config {
	return Config{
		Port: getEnv("PORT", "8080"),

		DBHost: getEnv("DB_HOST", "localhost"),
		DBPort: getEnv("DB_PORT", "5432"),
		DBName: getEnv("DB_NAME", "finance_db"),
		DBUser: getEnv("DB_USER", "postgres"),
		DBPass: getEnv("DB_PASS", "postgres"),

		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),

		SecretKey: getEnv("SECRET_KEY", DefaultSecretKey),
		JWTSecret: getEnv("JWT_SECRET_KEY", DefaultJWTSecret),

		JWTExpireDays: getEnvInt("JWT_EXPIRE_DAYS", 7),

		Env: getEnv("ENV", "dev"),

		// Optional TLS configuration for HTTPS.
		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),

		LogFormat: getEnv("LOG_FORMAT", "text"),

		CORSAllowedOrigins: parseCORSOrigins(getEnv("CORS_ALLOWED_ORIGINS", "")),
	}
}

// InsecureDefaults reports which secrets are still at their development defaults.
func (c Config) InsecureDefaults() []string {
	var names []string
	if c.SecretKey == DefaultSecretKey {
		names = append(names, "SECRET_KEY")
	}
	if c.JWTSecret == DefaultJWTSecret {
		names = append(names, "JWT_SECRET_KEY")
	}
	return names
}

// parseCORSOrigins splits a comma-separated list of origins and trims spaces. Empty strings are omitted.
func parseCORSOrigins(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if o := strings.TrimSpace(p); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
