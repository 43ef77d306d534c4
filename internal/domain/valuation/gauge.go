package valuation

import "math"

const (
	gaugeHeadroom  = 1.2
	gaugeMinimum   = 1.0
	gaugeLowRatio  = 0.3
	gaugeHighRatio = 0.7
)

// Band is one colored step of the gauge.
type Band struct {
	Name string
	From float64
	To   float64
}

// Gauge describes the dial used to show the predicted price against the
// showroom price.
type Gauge struct {
	Value     float64
	Max       float64
	Threshold float64
	Bands     []Band
}

// NewGauge lays out a dial scaled to 120% of the showroom price (at least
// one lakh) with low, mid and high bands at 30% and 70% of the showroom price.
func NewGauge(present, predicted float64) Gauge {
	maxPrice := math.Max(present*gaugeHeadroom, gaugeMinimum)
	return Gauge{
		Value:     predicted,
		Max:       maxPrice,
		Threshold: present,
		Bands: []Band{
			{Name: "low", From: 0, To: present * gaugeLowRatio},
			{Name: "mid", From: present * gaugeLowRatio, To: present * gaugeHighRatio},
			{Name: "high", From: present * gaugeHighRatio, To: maxPrice},
		},
	}
}
