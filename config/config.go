package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the process-wide settings. It is read from the
// environment exactly once at startup and treated as immutable; the
// signing secret in particular is handed to the auth service at
// construction and never read ambiently afterwards.
type Config struct {
	MongoURI    string
	MongoDBName string
	JWTSecret   string
	TokenTTL    time.Duration
	ServerPort  string
	Env         string
}

// Load reads the optional .env file and the environment. It fails if
// the JWT signing secret is absent, everything else has a default.
func Load() (*Config, error) {
	// A missing .env is fine; real deployments set the environment
	// directly.
	_ = godotenv.Load()

	cfg := &Config{
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName: getEnv("MONGO_DB_NAME", "taskflow"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		TokenTTL:    24 * time.Hour,
		ServerPort:  getEnv("SERVER_PORT", "3000"),
		Env:         getEnv("APP_ENV", "development"),
	}

	if raw := os.Getenv("TOKEN_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_TTL %q: %w", raw, err)
		}
		cfg.TokenTTL = ttl
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	return cfg, nil
}

// IsProduction reports whether internal error detail must be withheld
// from responses.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
