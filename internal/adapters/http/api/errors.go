package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/carprice/internal/adapters/model"
	service "github.com/okian/carprice/internal/app"
	"github.com/okian/carprice/internal/domain/car"
)

// ErrBadRequest marks request bodies that fail decoding or validation.
var ErrBadRequest = errors.New("bad request")

// NewKind returns kind tagged with the operation that produced it.
func NewKind(op string, kind error) error {
	return fmt.Errorf("%s: %w", op, kind)
}

// WrapKind tags err with op and kind, keeping both in the chain.
func WrapKind(op string, kind, err error) error {
	if err == nil {
		return NewKind(op, kind)
	}
	return fmt.Errorf("%s: %w: %w", op, kind, err)
}

// classify maps a service error to an HTTP status and error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, car.ErrInvalidCategory):
		return http.StatusBadRequest, "invalid_category"
	case errors.Is(err, service.ErrModelUnavailable):
		return http.StatusServiceUnavailable, "model_unavailable"
	case errors.Is(err, model.ErrPrediction):
		return http.StatusInternalServerError, "prediction_failed"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
