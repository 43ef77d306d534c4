package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	service "github.com/okian/carprice/internal/app"
	"github.com/okian/carprice/internal/domain/car"
	"github.com/okian/carprice/internal/domain/valuation"
)

const maxEstimateBody = 1 << 16

// estimateRequest mirrors the OpenAPI schema for POST /estimate. Numbers are
// pointers so a missing field is told apart from a zero.
type estimateRequest struct {
	Year         *int     `json:"year" validate:"required,min=2000,max=2024"`
	PresentPrice *float64 `json:"present_price" validate:"required,gte=0,lte=50"`
	KmsDriven    *int     `json:"kms_driven" validate:"required,gte=0,lte=500000"`
	FuelType     string   `json:"fuel_type" validate:"required"`
	SellerType   string   `json:"seller_type" validate:"required"`
	Transmission string   `json:"transmission" validate:"required"`
	Owner        *int     `json:"owner" validate:"required,gte=0,lte=3"`
}

func (r estimateRequest) inputs() (car.Inputs, error) {
	fuel, err := car.ParseFuelType(r.FuelType)
	if err != nil {
		return car.Inputs{}, err
	}
	seller, err := car.ParseSellerType(r.SellerType)
	if err != nil {
		return car.Inputs{}, err
	}
	trans, err := car.ParseTransmission(r.Transmission)
	if err != nil {
		return car.Inputs{}, err
	}
	return car.Inputs{
		Year:         *r.Year,
		PresentPrice: *r.PresentPrice,
		KmsDriven:    *r.KmsDriven,
		FuelType:     fuel,
		SellerType:   seller,
		Transmission: trans,
		Owner:        *r.Owner,
	}, nil
}

type priceRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

type gaugeBand struct {
	Name string  `json:"name"`
	From float64 `json:"from"`
	To   float64 `json:"to"`
}

type gaugeResponse struct {
	Value     float64     `json:"value"`
	Max       float64     `json:"max"`
	Threshold float64     `json:"threshold"`
	Bands     []gaugeBand `json:"bands"`
}

type carDetails struct {
	Year         int     `json:"year"`
	PresentPrice float64 `json:"present_price"`
	KmsDriven    int     `json:"kms_driven"`
	FuelType     string  `json:"fuel_type"`
	SellerType   string  `json:"seller_type"`
	Transmission string  `json:"transmission"`
	Owner        int     `json:"owner"`
	CarAge       int     `json:"car_age"`
}

type estimateResponse struct {
	ID                  string        `json:"id"`
	PredictedPrice      float64       `json:"predicted_price"`
	PresentPrice        float64       `json:"present_price"`
	Depreciation        float64       `json:"depreciation"`
	DepreciationPercent float64       `json:"depreciation_percent"`
	PriceRange          priceRange    `json:"price_range"`
	ReferenceYear       int           `json:"reference_year"`
	CarAge              int           `json:"car_age"`
	Factors             []string      `json:"factors"`
	Gauge               gaugeResponse `json:"gauge"`
	Details             carDetails    `json:"details"`
	Features            []float64     `json:"features"`
	CreatedAt           time.Time     `json:"created_at"`
}

func newEstimateResponse(e service.Estimate) estimateResponse {
	factors := e.Factors
	if factors == nil {
		factors = []string{}
	}
	return estimateResponse{
		ID:                  e.ID,
		PredictedPrice:      e.PredictedPrice,
		PresentPrice:        e.PresentPrice,
		Depreciation:        e.Depreciation,
		DepreciationPercent: e.DepreciationPercent,
		PriceRange:          priceRange{Low: e.PriceRangeLow, High: e.PriceRangeHigh},
		ReferenceYear:       e.ReferenceYear,
		CarAge:              e.CarAge,
		Factors:             factors,
		Gauge:               newGaugeResponse(e.Gauge),
		Details: carDetails{
			Year:         e.Inputs.Year,
			PresentPrice: e.Inputs.PresentPrice,
			KmsDriven:    e.Inputs.KmsDriven,
			FuelType:     string(e.Inputs.FuelType),
			SellerType:   string(e.Inputs.SellerType),
			Transmission: string(e.Inputs.Transmission),
			Owner:        e.Inputs.Owner,
			CarAge:       e.CarAge,
		},
		Features:  e.Features.Slice(),
		CreatedAt: e.CreatedAt,
	}
}

func newGaugeResponse(g valuation.Gauge) gaugeResponse {
	bands := make([]gaugeBand, 0, len(g.Bands))
	for _, b := range g.Bands {
		bands = append(bands, gaugeBand{Name: b.Name, From: b.From, To: b.To})
	}
	return gaugeResponse{Value: g.Value, Max: g.Max, Threshold: g.Threshold, Bands: bands}
}

// EstimateHandler handles valuation requests.
type EstimateHandler struct {
	deps     Dependencies
	validate *validator.Validate
}

// NewEstimateHandler creates a new estimate handler.
func NewEstimateHandler(deps Dependencies) *EstimateHandler {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &EstimateHandler{deps: deps, validate: v}
}

// HandlePostEstimate handles POST /estimate requests.
func (h *EstimateHandler) HandlePostEstimate(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_estimate"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req estimateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEstimateBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, describeValidation(err)))
		return
	}
	in, err := req.inputs()
	if err != nil {
		status, code := classify(err)
		writeError(w, status, code, err)
		return
	}

	est, err := h.deps.Estimate(r.Context(), in)
	if err != nil {
		status, code := classify(err)
		writeError(w, status, code, err)
		return
	}
	writeJSON(w, http.StatusOK, newEstimateResponse(est))
}

func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "min", "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		case "max", "lte":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
