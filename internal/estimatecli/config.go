package estimatecli

import "time"

// Config holds configuration for one CLI invocation.
type Config struct {
	BaseURL  string        // Base URL of the service
	Timeout  time.Duration // HTTP request timeout
	Request  Request       // Car to value
	Examples bool          // Value the server's sample cars instead of Request
	JSON     bool          // Print raw JSON instead of the text report
	Verbose  bool          // Enable debug logging
}

// Request mirrors the POST /estimate body.
type Request struct {
	Year         int     `json:"year"`
	PresentPrice float64 `json:"present_price"`
	KmsDriven    int     `json:"kms_driven"`
	FuelType     string  `json:"fuel_type"`
	SellerType   string  `json:"seller_type"`
	Transmission string  `json:"transmission"`
	Owner        int     `json:"owner"`
}

// PriceRange is the expected price band.
type PriceRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Details echoes the submitted car.
type Details struct {
	Year         int     `json:"year"`
	PresentPrice float64 `json:"present_price"`
	KmsDriven    int     `json:"kms_driven"`
	FuelType     string  `json:"fuel_type"`
	SellerType   string  `json:"seller_type"`
	Transmission string  `json:"transmission"`
	Owner        int     `json:"owner"`
	CarAge       int     `json:"car_age"`
}

// Estimate is the valuation returned by the service.
type Estimate struct {
	Label               string     `json:"label,omitempty"`
	ID                  string     `json:"id"`
	PredictedPrice      float64    `json:"predicted_price"`
	PresentPrice        float64    `json:"present_price"`
	Depreciation        float64    `json:"depreciation"`
	DepreciationPercent float64    `json:"depreciation_percent"`
	PriceRange          PriceRange `json:"price_range"`
	ReferenceYear       int        `json:"reference_year"`
	CarAge              int        `json:"car_age"`
	Factors             []string   `json:"factors"`
	Details             Details    `json:"details"`
}

// ErrorResponse is the service's error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
