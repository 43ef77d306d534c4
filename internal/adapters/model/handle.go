package model

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/carprice/pkg/logger"
	"github.com/okian/carprice/pkg/metrics"
)

const nanosecondsPerMillisecond = 1e6

// Handle owns the process-wide model. The artifact is fetched and decoded
// on the first Get; the outcome, model or error, is kept for the life of
// the handle. Create one per process and pass it to whatever predicts.
type Handle struct {
	source Source
	log    logger.Logger

	once   sync.Once
	model  *LinearModel
	err    error
	loaded atomic.Pointer[LinearModel]
}

// HandleOption configures a Handle.
type HandleOption func(*Handle)

// WithHandleLogger sets the logger used while loading.
func WithHandleLogger(l logger.Logger) HandleOption {
	return func(h *Handle) {
		if l != nil {
			h.log = l
		}
	}
}

// NewHandle creates an unloaded handle over source.
func NewHandle(source Source, opts ...HandleOption) *Handle {
	h := &Handle{source: source}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Get returns the loaded model, loading it on first use.
func (h *Handle) Get(ctx context.Context) (Predictor, error) {
	h.once.Do(func() {
		h.model, h.err = h.load(ctx)
		if h.err == nil {
			h.loaded.Store(h.model)
		}
	})
	if h.err != nil {
		return nil, h.err
	}
	return h.model, nil
}

// Info returns the loaded model's metadata, or false before a successful load.
func (h *Handle) Info() (Info, bool) {
	m := h.loaded.Load()
	if m == nil {
		return Info{}, false
	}
	return m.Info(), true
}

func (h *Handle) load(ctx context.Context) (*LinearModel, error) {
	start := time.Now()
	h.logger().Info(ctx, "loading model artifact",
		logger.String("source", h.source.Kind()),
		logger.String("artifact", h.source.Name()),
	)

	m, err := h.fetch(ctx)
	if err != nil {
		metrics.RecordModelLoadError(h.source.Kind())
		metrics.SetModelLoaded(false)
		h.logger().Error(ctx, "model artifact load failed",
			logger.String("artifact", h.source.Name()),
			logger.Error(err),
		)
		return nil, err
	}

	elapsed := time.Since(start)
	metrics.RecordModelLoad(float64(elapsed.Nanoseconds()) / nanosecondsPerMillisecond)
	metrics.SetModelLoaded(true)
	info := m.Info()
	h.logger().Info(ctx, "model artifact loaded",
		logger.String("algorithm", info.Algorithm),
		logger.String("version", info.Version),
		logger.Float64("r2", info.R2),
		logger.Duration("elapsed", elapsed),
	)
	return m, nil
}

func (h *Handle) fetch(ctx context.Context) (*LinearModel, error) {
	data, err := h.source.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	a, err := DecodeArtifact(h.source.Name(), data)
	if err != nil {
		return nil, err
	}
	return NewLinearModel(a, h.source.Kind()+":"+h.source.Name())
}

func (h *Handle) logger() logger.Logger {
	if h.log == nil {
		h.log = logger.Named("model")
	}
	return h.log
}
