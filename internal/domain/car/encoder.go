package car

import "fmt"

// FeatureCount is the length of every FeatureVector.
const FeatureCount = 7

// FeatureNames is the column order the model was trained with. The order is
// shared with the model artifact and must not change.
var FeatureNames = [FeatureCount]string{
	"Year",
	"Present_Price",
	"Kms_Driven",
	"Fuel_Type",
	"Seller_Type",
	"Transmission",
	"Owner",
}

// FeatureVector is the numeric model input, ordered as FeatureNames.
type FeatureVector [FeatureCount]float64

// Slice returns a copy of the vector as a slice.
func (v FeatureVector) Slice() []float64 {
	out := make([]float64, FeatureCount)
	copy(out, v[:])
	return out
}

var fuelCodes = map[FuelType]float64{Petrol: 0, Diesel: 1, CNG: 2}

var sellerCodes = map[SellerType]float64{Dealer: 0, Individual: 1}

var transmissionCodes = map[Transmission]float64{Manual: 0, Automatic: 1}

// Encode maps in to the model's feature vector. Numeric fields pass through
// unchanged; categorical fields use fixed lookup tables.
func Encode(in Inputs) (FeatureVector, error) {
	fuel, ok := fuelCodes[in.FuelType]
	if !ok {
		return FeatureVector{}, fmt.Errorf("%w: fuel type %q", ErrInvalidCategory, in.FuelType)
	}
	seller, ok := sellerCodes[in.SellerType]
	if !ok {
		return FeatureVector{}, fmt.Errorf("%w: seller type %q", ErrInvalidCategory, in.SellerType)
	}
	transmission, ok := transmissionCodes[in.Transmission]
	if !ok {
		return FeatureVector{}, fmt.Errorf("%w: transmission %q", ErrInvalidCategory, in.Transmission)
	}
	if in.Owner < 0 || in.Owner > MaxOwner {
		return FeatureVector{}, fmt.Errorf("%w: owner %d", ErrInvalidCategory, in.Owner)
	}

	return FeatureVector{
		float64(in.Year),
		in.PresentPrice,
		float64(in.KmsDriven),
		fuel,
		seller,
		transmission,
		float64(in.Owner),
	}, nil
}
