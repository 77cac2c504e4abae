package config

import (
	"os"
	"strings"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode     Mode
	HTTPAddr string

	DBDriver string
	DBDSN    string

	JWTSecret string

	// Seed account for offline/dev runs, hashed at boot.
	SeedUser string
	SeedPass string

	CORSOriginsOnline  []string
	CORSOriginsOffline []string
}

func FromEnv() Config {
	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeOffline
	}
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		Mode:      mode,
		HTTPAddr:  addr,
		DBDriver:  envOr("DB_DRIVER", "sqlite"),
		DBDSN:     envOr("DB_DSN", ""),
		JWTSecret: envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),

		// dev only, override in any real deployment
		SeedUser: envOr("SEED_USER", "mentee"),
		SeedPass: envOr("SEED_PASS", "mentee"),

		CORSOriginsOnline:  csvOr("CORS_ORIGINS_ONLINE", "https://app.careerbridge.io"),
		CORSOriginsOffline: csvOr("CORS_ORIGINS_OFFLINE", "http://localhost:3000,http://localhost:19006"),
	}
}

// CORSOrigins returns the allow-list for the active mode.
func (c Config) CORSOrigins() []string {
	if c.Mode == ModeOnline {
		return c.CORSOriginsOnline
	}
	return c.CORSOriginsOffline
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
