// Package car holds the used-car attributes collected from a seller and
// their encoding into the feature vector the price model was trained on.
package car

import (
	"fmt"
	"strings"
)

// Input domains accepted at the edges. The encoder itself trusts its input.
const (
	MinYear         = 2000
	MaxYear         = 2024
	MinPresentPrice = 0.0
	MaxPresentPrice = 50.0
	MinKmsDriven    = 0
	MaxKmsDriven    = 500_000
	MaxOwner        = 3
)

// FuelType is the fuel a car runs on.
type FuelType string

const (
	Petrol FuelType = "Petrol"
	Diesel FuelType = "Diesel"
	CNG    FuelType = "CNG"
)

// SellerType distinguishes dealers from private sellers.
type SellerType string

const (
	Dealer     SellerType = "Dealer"
	Individual SellerType = "Individual"
)

// Transmission is the gearbox kind.
type Transmission string

const (
	Manual    Transmission = "Manual"
	Automatic Transmission = "Automatic"
)

// FuelTypes lists the accepted fuel types in encoding order.
var FuelTypes = []FuelType{Petrol, Diesel, CNG}

// SellerTypes lists the accepted seller types in encoding order.
var SellerTypes = []SellerType{Dealer, Individual}

// Transmissions lists the accepted transmissions in encoding order.
var Transmissions = []Transmission{Manual, Automatic}

// Inputs are the attributes of one car submitted for valuation.
// PresentPrice is the current ex-showroom price in lakhs.
type Inputs struct {
	Year         int
	PresentPrice float64
	KmsDriven    int
	FuelType     FuelType
	SellerType   SellerType
	Transmission Transmission
	Owner        int
}

// ParseFuelType resolves a fuel type case-insensitively.
func ParseFuelType(s string) (FuelType, error) {
	for _, f := range FuelTypes {
		if strings.EqualFold(strings.TrimSpace(s), string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: fuel type %q", ErrInvalidCategory, s)
}

// ParseSellerType resolves a seller type case-insensitively.
func ParseSellerType(s string) (SellerType, error) {
	for _, st := range SellerTypes {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: seller type %q", ErrInvalidCategory, s)
}

// ParseTransmission resolves a transmission case-insensitively.
func ParseTransmission(s string) (Transmission, error) {
	for _, t := range Transmissions {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: transmission %q", ErrInvalidCategory, s)
}
