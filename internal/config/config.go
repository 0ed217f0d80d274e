package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime configuration, populated from environment
// variables. A .env file is loaded by the godotenv autoload import in the
// server package before this is parsed.
type Config struct {
	Port                    int      `env:"PORT" envDefault:"8080"`
	JWTSecret               string   `env:"JWT_SECRET_KEY" envDefault:"your-secret-key-change-this"`
	FirebaseCredentialsFile string   `env:"FIREBASE_CREDENTIALS_FILE" envDefault:"firebase-credentials.json"`
	FirebaseDatabaseURL     string   `env:"FIREBASE_DATABASE_URL"`
	AllowedOrigins          []string `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:3000"`
	LogLevel                string   `env:"LOG_LEVEL" envDefault:"info"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}
