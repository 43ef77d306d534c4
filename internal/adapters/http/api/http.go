// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/carprice/internal/adapters/model"
	service "github.com/okian/carprice/internal/app"
	"github.com/okian/carprice/internal/domain/car"
)

// Dependencies required by HTTP handlers.
type Dependencies interface {
	Estimate(ctx context.Context, in car.Inputs) (service.Estimate, error)
	Examples(ctx context.Context) ([]service.ExampleEstimate, error)
	ModelInfo(ctx context.Context) (model.Info, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	estimateHandler *EstimateHandler
	examplesHandler *ExamplesHandler
	modelHandler    *ModelHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		estimateHandler: NewEstimateHandler(deps),
		examplesHandler: NewExamplesHandler(deps),
		modelHandler:    NewModelHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleHealth)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/estimate", MetricsMiddleware(s.estimateHandler.HandlePostEstimate, "estimate"))
	mux.HandleFunc("/examples", MetricsMiddleware(s.examplesHandler.HandleGetExamples, "examples"))
	mux.HandleFunc("/model", MetricsMiddleware(s.modelHandler.HandleGetModel, "model"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
