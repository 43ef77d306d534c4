// Package service wires the feature encoder, the prediction model and the
// valuation reporter into the estimate pipeline used by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/carprice/internal/adapters/model"
	"github.com/okian/carprice/internal/domain/car"
	"github.com/okian/carprice/internal/domain/valuation"
	"github.com/okian/carprice/pkg/logger"
	"github.com/okian/carprice/pkg/metrics"
)

const nanosecondsPerMillisecond = 1e6

// ErrModelUnavailable is returned when no prediction model has been loaded.
var ErrModelUnavailable = errors.New("prediction model unavailable")

// ModelProvider hands out the loaded prediction model.
type ModelProvider interface {
	Get(ctx context.Context) (model.Predictor, error)
	Info() (model.Info, bool)
}

// Estimate is the outcome of one valuation request.
type Estimate struct {
	ID       string
	Inputs   car.Inputs
	Features car.FeatureVector
	valuation.Result
	CreatedAt time.Time
}

// Example is a sample car shown to users before they submit their own.
type Example struct {
	Label  string
	Inputs car.Inputs
}

// Service runs the encode, predict and report pipeline.
type Service struct {
	mu sync.RWMutex

	models   ModelProvider
	reporter *valuation.Reporter
	examples []Example

	referenceYear int
	now           func() time.Time

	started   bool
	predictor model.Predictor
	estimates uint64
	failures  uint64

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithModelProvider sets the source of the prediction model.
func WithModelProvider(p ModelProvider) Option {
	return func(s *Service) {
		if p != nil {
			s.models = p
		}
	}
}

// WithReferenceYear pins the year car age is measured from. Zero keeps the
// current calendar year.
func WithReferenceYear(year int) Option {
	return func(s *Service) {
		if year > 0 {
			s.referenceYear = year
		}
	}
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithExamples replaces the sample cars returned by Examples.
func WithExamples(examples []Example) Option {
	return func(s *Service) {
		if examples != nil {
			s.examples = examples
		}
	}
}

// DefaultExamples are the recent, mid-range and older sample cars.
func DefaultExamples() []Example {
	sample := func(label string, year int, price float64, kms int) Example {
		return Example{Label: label, Inputs: car.Inputs{
			Year:         year,
			PresentPrice: price,
			KmsDriven:    kms,
			FuelType:     car.Petrol,
			SellerType:   car.Dealer,
			Transmission: car.Manual,
			Owner:        0,
		}}
	}
	return []Example{
		sample("Recent car", 2024, 8.5, 20_000),
		sample("Mid-range car", 2015, 6.0, 50_000),
		sample("Older car", 2010, 5.0, 100_000),
	}
}

// New constructs a Service. Start must be called before estimating.
func New(opts ...Option) *Service {
	s := &Service{
		examples: DefaultExamples(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.reporter = valuation.NewReporter(
		valuation.WithReferenceYear(s.referenceYear),
		valuation.WithClock(s.now),
	)
	return s
}

// Start resolves the prediction model. A missing or broken model is
// returned as an error and leaves the service unstarted.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Named("estimator")
	}
	if s.models == nil {
		return fmt.Errorf("%w: no model provider configured", ErrModelUnavailable)
	}

	s.logger.Info(ctx, "starting valuation service...")
	p, err := s.models.Get(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrModelUnavailable, err)
	}
	s.predictor = p
	s.started = true

	s.logger.Info(ctx, "valuation service started",
		logger.Int("referenceYear", s.reporter.ReferenceYear()),
		logger.Bool("referenceYearPinned", s.referenceYear > 0),
	)
	return nil
}

// Stop marks the service as stopped. The model handle is left to its owner.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.predictor = nil
	s.logger.Info(context.Background(), "valuation service stopped")
}

// Estimate values one car. Nothing is computed unless the model is ready.
func (s *Service) Estimate(ctx context.Context, in car.Inputs) (Estimate, error) {
	s.mu.RLock()
	p := s.predictor
	s.mu.RUnlock()
	if p == nil {
		s.fail("model_unavailable")
		return Estimate{}, ErrModelUnavailable
	}

	features, err := car.Encode(in)
	if err != nil {
		s.fail("invalid_category")
		return Estimate{}, err
	}

	start := time.Now()
	predicted, err := p.Predict(ctx, features)
	latencyMs := float64(time.Since(start).Nanoseconds()) / nanosecondsPerMillisecond
	if err != nil {
		s.fail("prediction")
		s.logger.Error(ctx, "prediction failed", logger.Any("features", features), logger.Error(err))
		return Estimate{}, err
	}

	result := s.reporter.Report(in, predicted)
	est := Estimate{
		ID:        uuid.NewString(),
		Inputs:    in,
		Features:  features,
		Result:    result,
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	s.estimates++
	s.mu.Unlock()
	metrics.RecordEstimate(result.PredictedPrice, result.DepreciationPercent, latencyMs)
	for _, f := range result.Factors {
		metrics.RecordFactor(f)
	}

	s.logger.Debug(ctx, "estimate produced",
		logger.String("id", est.ID),
		logger.Float64("predicted", result.PredictedPrice),
		logger.Float64("depreciationPercent", result.DepreciationPercent),
		logger.Int("carAge", result.CarAge),
	)
	return est, nil
}

// Examples values every sample car.
func (s *Service) Examples(ctx context.Context) ([]ExampleEstimate, error) {
	out := make([]ExampleEstimate, 0, len(s.examples))
	for _, ex := range s.examples {
		est, err := s.Estimate(ctx, ex.Inputs)
		if err != nil {
			return nil, fmt.Errorf("example %q: %w", ex.Label, err)
		}
		out = append(out, ExampleEstimate{Label: ex.Label, Estimate: est})
	}
	return out, nil
}

// ExampleEstimate pairs a sample label with its estimate.
type ExampleEstimate struct {
	Label string
	Estimate
}

// ModelInfo returns metadata of the loaded model.
func (s *Service) ModelInfo(_ context.Context) (model.Info, error) {
	if s.models == nil {
		return model.Info{}, ErrModelUnavailable
	}
	info, ok := s.models.Info()
	if !ok {
		return model.Info{}, ErrModelUnavailable
	}
	return info, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":       s.started,
		"modelLoaded":   s.predictor != nil,
		"referenceYear": s.reporter.ReferenceYear(),
		"estimates":     s.estimates,
		"failures":      s.failures,
	}
	if s.models != nil {
		if info, ok := s.models.Info(); ok {
			stats["modelVersion"] = info.Version
		}
	}
	return stats
}

func (s *Service) fail(kind string) {
	s.mu.Lock()
	s.failures++
	s.mu.Unlock()
	metrics.RecordEstimateError(kind)
}
