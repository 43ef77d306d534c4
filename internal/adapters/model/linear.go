package model

import (
	"context"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/okian/carprice/internal/domain/car"
)

// Predictor returns a predicted resale price in lakhs for a feature vector.
type Predictor interface {
	Predict(ctx context.Context, features car.FeatureVector) (float64, error)
}

// Info describes a loaded model.
type Info struct {
	Algorithm string    `json:"algorithm"`
	Version   string    `json:"version"`
	Features  []string  `json:"features"`
	R2        float64   `json:"r2"`
	MAE       float64   `json:"mae"`
	RMSE      float64   `json:"rmse"`
	Samples   int       `json:"samples"`
	TrainedAt time.Time `json:"trained_at"`
	Source    string    `json:"source"`
}

// LinearModel is a linear regression: intercept + coefficients·features.
// It is immutable after construction.
type LinearModel struct {
	intercept float64
	weights   *mat.VecDense
	info      Info
}

// NewLinearModel builds a model from a validated artifact.
func NewLinearModel(a *Artifact, source string) (*LinearModel, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	weights := make([]float64, len(a.Coefficients))
	copy(weights, a.Coefficients)
	features := make([]string, len(a.Features))
	copy(features, a.Features)

	return &LinearModel{
		intercept: a.Intercept,
		weights:   mat.NewVecDense(len(weights), weights),
		info: Info{
			Algorithm: a.Algorithm,
			Version:   a.Version,
			Features:  features,
			R2:        a.Metrics.R2,
			MAE:       a.Metrics.MAE,
			RMSE:      a.Metrics.RMSE,
			Samples:   a.Metrics.Samples,
			TrainedAt: a.TrainedAt,
			Source:    source,
		},
	}, nil
}

// Predict implements Predictor.
func (m *LinearModel) Predict(ctx context.Context, features car.FeatureVector) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPrediction, err)
	}
	x := mat.NewVecDense(car.FeatureCount, features.Slice())
	y := m.intercept + mat.Dot(m.weights, x)
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, fmt.Errorf("%w: non-finite output", ErrPrediction)
	}
	return y, nil
}

// Info returns the model's metadata.
func (m *LinearModel) Info() Info {
	return m.info
}
