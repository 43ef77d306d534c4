// Package model loads the trained price model and serves predictions from it.
//
// The artifact is produced by an external training step. It stores a linear
// regression over the encoder's feature columns, serialized with msgpack
// (or JSON when the artifact name ends in .json).
package model

import (
	"encoding/json"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/okian/carprice/internal/domain/car"
)

// TrainingMetrics summarizes how the model scored on its hold-out set.
type TrainingMetrics struct {
	R2      float64 `msgpack:"r2" json:"r2"`
	MAE     float64 `msgpack:"mae" json:"mae"`
	RMSE    float64 `msgpack:"rmse" json:"rmse"`
	Samples int     `msgpack:"samples" json:"samples"`
}

// Artifact is the serialized form of a trained model.
type Artifact struct {
	Algorithm    string          `msgpack:"algorithm" json:"algorithm"`
	Version      string          `msgpack:"version" json:"version"`
	Features     []string        `msgpack:"features" json:"features"`
	Intercept    float64         `msgpack:"intercept" json:"intercept"`
	Coefficients []float64       `msgpack:"coefficients" json:"coefficients"`
	Metrics      TrainingMetrics `msgpack:"metrics" json:"metrics"`
	TrainedAt    time.Time       `msgpack:"trained_at" json:"trained_at"`
}

// Validate checks the artifact agrees with the encoder's column order.
func (a *Artifact) Validate() error {
	if len(a.Features) != car.FeatureCount {
		return fmt.Errorf("%w: expected %d features, got %d", ErrInvalidArtifact, car.FeatureCount, len(a.Features))
	}
	for i, name := range car.FeatureNames {
		if a.Features[i] != name {
			return fmt.Errorf("%w: feature %d is %q, want %q", ErrInvalidArtifact, i, a.Features[i], name)
		}
	}
	if len(a.Coefficients) != car.FeatureCount {
		return fmt.Errorf("%w: expected %d coefficients, got %d", ErrInvalidArtifact, car.FeatureCount, len(a.Coefficients))
	}
	for _, c := range append([]float64{a.Intercept}, a.Coefficients...) {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Errorf("%w: non-finite parameter", ErrInvalidArtifact)
		}
	}
	return nil
}

func isJSON(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".json")
}

// DecodeArtifact parses and validates an artifact. The codec is picked from
// the extension of name.
func DecodeArtifact(name string, data []byte) (*Artifact, error) {
	var a Artifact
	var err error
	if isJSON(name) {
		err = json.Unmarshal(data, &a)
	} else {
		err = msgpack.Unmarshal(data, &a)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrInvalidArtifact, name, err)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// EncodeArtifact serializes a with the codec matching name.
func EncodeArtifact(name string, a *Artifact) ([]byte, error) {
	if isJSON(name) {
		return json.Marshal(a)
	}
	return msgpack.Marshal(a)
}
