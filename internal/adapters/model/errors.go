package model

import "errors"

// Sentinel kinds for model errors.
var (
	// ErrMissingModel means no artifact exists at the configured source.
	// The training step has to be run before the service can start.
	ErrMissingModel = errors.New("model artifact not found")

	// ErrInvalidArtifact means the artifact exists but cannot be used.
	ErrInvalidArtifact = errors.New("invalid model artifact")

	// ErrPrediction means the model produced an unusable value.
	ErrPrediction = errors.New("prediction failed")
)
