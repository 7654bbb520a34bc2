package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// Secret key for JWT token signing and the lifetime of issued tokens
	JWTSecret string        `env:"JWT_SECRET,required,notEmpty"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"15m"`

	// Empty RedisURL disables the event cache
	RedisURL      string        `env:"REDIS_URL"`
	EventCacheTTL time.Duration `env:"EVENT_CACHE_TTL" envDefault:"5m"`

	GinMode string        `env:"GIN_MODE" envDefault:"release"`
	Logging LoggingConfig `envPrefix:"LOG_"`
}

type LoggingConfig struct {
	Level string `env:"LEVEL" envDefault:"info"`
	// json or console
	Format string `env:"FORMAT" envDefault:"json"`
}

// Load reads a .env file when present and then parses the environment
func Load() (*Config, error) {
	// Ignore error if the file doesn't exist
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
