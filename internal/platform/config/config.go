// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config loads the API's settings from the environment with
caarlos0/env and rejects inconsistent combinations before anything connects.

	cfg, err := config.Load()

The returned [Config] is read-only and handed to constructors; nothing reads
the environment after startup.
*/
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/tasklist/internal/platform/sec"
)

// # Configuration Schema

// Config holds all runtime configuration for the Tasklist API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath overrides the embedded migrations with a directory on disk.
	MigrationPath string `env:"MIGRATION_PATH"`

	// Key-Value Cache (Redis). Empty disables login throttling.
	RedisURL string `env:"REDIS_URL"`

	// Token signing
	JWTSecret   string        `env:"JWT_SECRET,required,notEmpty"`
	JWTTTL      time.Duration `env:"JWT_TTL"      envDefault:"1h"`
	JWTAudience string        `env:"JWT_AUDIENCE" envDefault:"tasklist-clients"`
	JWTIssuer   string        `env:"JWT_ISSUER"   envDefault:"tasklist-api"`

	// Password hashing work factor
	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`

	// Login throttling
	LoginMaxAttempts   int           `env:"LOGIN_MAX_ATTEMPTS"   envDefault:"5"`
	LoginAttemptWindow time.Duration `env:"LOGIN_ATTEMPT_WINDOW" envDefault:"15m"`

	// Avatar uploads (local disk unless S3_BUCKET is set)
	AvatarDir      string `env:"AVATAR_DIR"       envDefault:"files"`
	AvatarMaxBytes int64  `env:"AVATAR_MAX_BYTES" envDefault:"3145728"`

	// Object Storage (S3-compatible)
	S3Bucket    string `env:"S3_BUCKET"`
	S3Region    string `env:"S3_REGION"     envDefault:"auto"`
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`

	// Cross-Origin Resource Sharing
	ExtraOrigins []string `env:"EXTRA_ORIGINS" envSeparator:","`
}

// # Configuration Loading

// Load parses the environment into a [Config] and validates it.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return &cfg, nil
}

// validate reports every invalid setting at once.
func (c *Config) validate() error {
	var errs []error

	if c.JWTTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}
	if strings.TrimSpace(c.JWTAudience) == "" || strings.TrimSpace(c.JWTIssuer) == "" {
		errs = append(errs, errors.New("JWT_AUDIENCE and JWT_ISSUER must not be empty"))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	if c.LoginMaxAttempts <= 0 || c.LoginAttemptWindow <= 0 {
		errs = append(errs, errors.New("LOGIN_MAX_ATTEMPTS and LOGIN_ATTEMPT_WINDOW must be positive"))
	}
	if c.AvatarMaxBytes <= 0 {
		errs = append(errs, errors.New("AVATAR_MAX_BYTES must be positive"))
	}
	if (c.S3AccessKey == "") != (c.S3SecretKey == "") {
		errs = append(errs, errors.New("S3_ACCESS_KEY and S3_SECRET_KEY must be set together"))
	}

	return errors.Join(errs...)
}

// TokenConfig projects the token signing settings.
func (c *Config) TokenConfig() sec.TokenConfig {
	return sec.TokenConfig{
		Secret:   c.JWTSecret,
		TTL:      c.JWTTTL,
		Audience: c.JWTAudience,
		Issuer:   c.JWTIssuer,
	}
}

// UsesS3 reports whether avatars go to object storage instead of local disk.
func (c *Config) UsesS3() bool {
	return c.S3Bucket != ""
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// AllowedOrigins returns the extra CORS origins accepted outside development.
func (c *Config) AllowedOrigins() []string {
	return c.ExtraOrigins
}
