package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix  = "CARPRICE_"
	envFileVar = "CARPRICE_CONFIG"
)

// Load builds a Config by layering, from low to high precedence:
//  1. defaults (New)
//  2. a .env file in the working directory, if present
//  3. a YAML file named by CARPRICE_CONFIG
//  4. CARPRICE_* environment variables
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	// .env only seeds the process environment; real env vars win.
	_ = godotenv.Load()

	k := koanf.New(".")

	if path := os.Getenv(envFileVar); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrLoadConfig, path, err)
		}
	}

	// CARPRICE_MODEL_PATH -> model_path; underscores are kept to match koanf tags.
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, strings.ToLower(envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.ReferenceYear < 0:
		return fmt.Errorf("%w: reference_year must not be negative", ErrInvalidConfig)
	}

	switch c.ModelSource {
	case SourceFile:
		if c.ModelPath == "" {
			return fmt.Errorf("%w: model_path must not be empty", ErrInvalidConfig)
		}
	case SourceS3:
		if c.S3Bucket == "" || c.S3Key == "" {
			return fmt.Errorf("%w: s3_bucket and s3_key are required for the s3 model source", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown model_source %q", ErrInvalidConfig, c.ModelSource)
	}
	return nil
}
