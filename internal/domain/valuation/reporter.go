// Package valuation turns a model's predicted price into the figures shown
// to a seller: depreciation, an expected price band, car age and a list of
// qualitative price factors.
package valuation

import (
	"time"

	"github.com/okian/carprice/internal/domain/car"
)

const (
	rangeLowRatio  = 0.9
	rangeHighRatio = 1.1
	percent        = 100
)

// Result is the derived valuation for one estimate. It is never persisted.
type Result struct {
	PredictedPrice      float64
	PresentPrice        float64
	Depreciation        float64
	DepreciationPercent float64
	PriceRangeLow       float64
	PriceRangeHigh      float64
	ReferenceYear       int
	CarAge              int
	Factors             []string
	Gauge               Gauge
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithReferenceYear pins the year car age is measured from. Non-positive
// values are ignored.
func WithReferenceYear(year int) Option {
	return func(r *Reporter) {
		if year > 0 {
			r.referenceYear = year
		}
	}
}

// WithClock sets the time source used when no reference year is pinned.
func WithClock(now func() time.Time) Option {
	return func(r *Reporter) {
		if now != nil {
			r.now = now
		}
	}
}

// WithRules replaces the factor rule table.
func WithRules(rules []Rule) Option {
	return func(r *Reporter) {
		if rules != nil {
			r.rules = rules
		}
	}
}

// Reporter computes valuation results. It holds no per-request state and is
// safe for concurrent use.
type Reporter struct {
	referenceYear int
	now           func() time.Time
	rules         []Rule
}

// NewReporter creates a Reporter. Without WithReferenceYear the current
// calendar year is read from the clock on every report.
func NewReporter(opts ...Option) *Reporter {
	r := &Reporter{
		now:   time.Now,
		rules: DefaultRules(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ReferenceYear returns the year car age is currently measured from.
func (r *Reporter) ReferenceYear() int {
	if r.referenceYear > 0 {
		return r.referenceYear
	}
	return r.now().Year()
}

// CarAge returns the age of a car built in year. Years after the reference
// year count as age zero.
func (r *Reporter) CarAge(year int) int {
	return ageAt(r.ReferenceYear(), year)
}

func ageAt(refYear, year int) int {
	if year > refYear {
		return 0
	}
	return refYear - year
}

// Report derives the valuation of in given the model's predicted price.
func (r *Reporter) Report(in car.Inputs, predicted float64) Result {
	refYear := r.ReferenceYear()
	age := ageAt(refYear, in.Year)
	depreciation := in.PresentPrice - predicted

	return Result{
		PredictedPrice:      predicted,
		PresentPrice:        in.PresentPrice,
		Depreciation:        depreciation,
		DepreciationPercent: DepreciationPercent(in.PresentPrice, predicted),
		PriceRangeLow:       predicted * rangeLowRatio,
		PriceRangeHigh:      predicted * rangeHighRatio,
		ReferenceYear:       refYear,
		CarAge:              age,
		Factors:             Evaluate(r.rules, Subject{Inputs: in, Age: age}),
		Gauge:               NewGauge(in.PresentPrice, predicted),
	}
}

// DepreciationPercent is (present - predicted) / present * 100, and zero
// when present is not positive.
func DepreciationPercent(present, predicted float64) float64 {
	if present <= 0 {
		return 0
	}
	return (present - predicted) / present * percent
}
