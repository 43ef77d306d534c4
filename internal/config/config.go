// Package config defines service configuration and how it is loaded.
package config

import (
	"context"
)

// Model artifact sources.
const (
	SourceFile = "file"
	SourceS3   = "s3"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// ModelSource selects where the trained artifact is read from: file or s3.
	ModelSource string `koanf:"model_source"`

	// ModelPath is the local artifact path when ModelSource is "file".
	ModelPath string `koanf:"model_path"`

	S3Bucket string `koanf:"s3_bucket"`
	S3Key    string `koanf:"s3_key"`
	S3Region string `koanf:"s3_region"`

	// ReferenceYear anchors car age computation. Zero means the current
	// calendar year at the time of each estimate.
	ReferenceYear int `koanf:"reference_year"`
}

// New creates a Config populated with defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:      "info",
		LogFormat:     "text",
		Addr:          ":9080",
		ModelSource:   SourceFile,
		ModelPath:     "car_prediction_model.msgpack",
		S3Key:         "car_prediction_model.msgpack",
		ReferenceYear: 0,
	}
}
