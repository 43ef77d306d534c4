package valuation_test

import (
	"testing"
	"time"

	"github.com/okian/carprice/internal/domain/car"
	"github.com/okian/carprice/internal/domain/valuation"
	. "github.com/smartystreets/goconvey/convey"
)

const epsilon = 1e-9

func inputs(year, kms int, fuel car.FuelType, seller car.SellerType, tr car.Transmission) car.Inputs {
	return car.Inputs{
		Year:         year,
		PresentPrice: 5.0,
		KmsDriven:    kms,
		FuelType:     fuel,
		SellerType:   seller,
		Transmission: tr,
	}
}

func TestReport(t *testing.T) {
	Convey("Given a reporter pinned to 2026", t, func() {
		r := valuation.NewReporter(valuation.WithReferenceYear(2026))

		Convey("When the model predicts 4.0 for a 5.0 lakh car", func() {
			res := r.Report(inputs(2015, 50000, car.Petrol, car.Dealer, car.Manual), 4.0)

			Convey("Then depreciation and the price band should follow", func() {
				So(res.PredictedPrice, ShouldEqual, 4.0)
				So(res.PresentPrice, ShouldEqual, 5.0)
				So(res.Depreciation, ShouldAlmostEqual, 1.0, epsilon)
				So(res.DepreciationPercent, ShouldAlmostEqual, 20.0, epsilon)
				So(res.PriceRangeLow, ShouldAlmostEqual, 3.6, epsilon)
				So(res.PriceRangeHigh, ShouldAlmostEqual, 4.4, epsilon)
				So(res.ReferenceYear, ShouldEqual, 2026)
				So(res.CarAge, ShouldEqual, 11)
			})
		})

		Convey("When the showroom price is zero", func() {
			in := inputs(2015, 50000, car.Petrol, car.Dealer, car.Manual)
			in.PresentPrice = 0
			res := r.Report(in, 2.5)

			Convey("Then the depreciation percent should be zero", func() {
				So(res.DepreciationPercent, ShouldEqual, 0)
				So(res.Depreciation, ShouldAlmostEqual, -2.5, epsilon)
			})
		})

		Convey("When the model predicts above the showroom price", func() {
			res := r.Report(inputs(2023, 1000, car.Diesel, car.Dealer, car.Automatic), 6.0)

			Convey("Then depreciation should be negative", func() {
				So(res.Depreciation, ShouldAlmostEqual, -1.0, epsilon)
				So(res.DepreciationPercent, ShouldAlmostEqual, -20.0, epsilon)
			})
		})
	})
}

func TestDepreciationPercent(t *testing.T) {
	Convey("Given the depreciation percent guard", t, func() {
		Convey("Then non-positive showroom prices should yield zero", func() {
			So(valuation.DepreciationPercent(0, 3.2), ShouldEqual, 0)
			So(valuation.DepreciationPercent(-1, 3.2), ShouldEqual, 0)
			So(valuation.DepreciationPercent(0, 0), ShouldEqual, 0)
		})

		Convey("Then positive showroom prices should yield the ratio", func() {
			So(valuation.DepreciationPercent(10, 7.5), ShouldAlmostEqual, 25.0, epsilon)
		})
	})
}

func TestCarAge(t *testing.T) {
	Convey("Given a reporter pinned to 2026", t, func() {
		r := valuation.NewReporter(valuation.WithReferenceYear(2026))

		Convey("Then age should be measured from the reference year", func() {
			So(r.CarAge(2026), ShouldEqual, 0)
			So(r.CarAge(2000), ShouldEqual, 26)
			So(r.CarAge(2024), ShouldEqual, 2)
		})

		Convey("Then years after the reference year should count as new", func() {
			So(r.CarAge(2030), ShouldEqual, 0)
		})
	})

	Convey("Given a reporter without a pinned year", t, func() {
		clock := func() time.Time { return time.Date(2031, time.March, 1, 0, 0, 0, 0, time.UTC) }
		r := valuation.NewReporter(valuation.WithClock(clock))

		Convey("Then the clock should supply the reference year", func() {
			So(r.ReferenceYear(), ShouldEqual, 2031)
			So(r.CarAge(2021), ShouldEqual, 10)
		})

		Convey("Then a non-positive pinned year should be ignored", func() {
			r := valuation.NewReporter(valuation.WithReferenceYear(0), valuation.WithClock(clock))
			So(r.ReferenceYear(), ShouldEqual, 2031)
		})
	})
}

func TestFactors(t *testing.T) {
	Convey("Given a reporter pinned to 2026", t, func() {
		r := valuation.NewReporter(valuation.WithReferenceYear(2026))

		Convey("When an old, high-mileage diesel automatic is sold privately", func() {
			res := r.Report(inputs(2014, 90000, car.Diesel, car.Individual, car.Automatic), 2.0)

			Convey("Then the seller should contribute nothing", func() {
				So(res.CarAge, ShouldEqual, 12)
				So(res.Factors, ShouldResemble, []string{
					"older car, higher depreciation",
					"high mileage, reduces value",
					"automatic, premium pricing",
					"preferred for high usage",
				})
			})
		})

		Convey("When a nearly new, low-mileage petrol manual comes from a dealer", func() {
			res := r.Report(inputs(2024, 30000, car.Petrol, car.Dealer, car.Manual), 4.5)

			Convey("Then the factors should be listed in rule order", func() {
				So(res.Factors, ShouldResemble, []string{
					valuation.FactorVeryNew,
					valuation.FactorLowMileage,
					valuation.FactorPetrol,
					valuation.FactorDealerWarranty,
				})
			})
		})

		Convey("When a CNG manual from an individual is evaluated", func() {
			res := r.Report(inputs(2016, 80000, car.CNG, car.Individual, car.Manual), 2.0)

			Convey("Then only the age and mileage tiers should appear", func() {
				So(res.Factors, ShouldResemble, []string{
					valuation.FactorModerateAge,
					valuation.FactorAverageMileage,
				})
			})
		})

		Convey("When the age sits on each tier boundary", func() {
			ageTier := func(year int) string {
				return r.Report(inputs(year, 10, car.CNG, car.Individual, car.Manual), 1).Factors[0]
			}

			Convey("Then every age should land in exactly one tier", func() {
				So(ageTier(2024), ShouldEqual, valuation.FactorVeryNew)       // 2
				So(ageTier(2023), ShouldEqual, valuation.FactorRelativelyNew) // 3
				So(ageTier(2022), ShouldEqual, valuation.FactorRelativelyNew) // 4
				So(ageTier(2021), ShouldEqual, valuation.FactorModerateAge)   // 5
				So(ageTier(2016), ShouldEqual, valuation.FactorModerateAge)   // 10
				So(ageTier(2015), ShouldEqual, valuation.FactorOlder)         // 11
				for year := car.MinYear; year <= 2026; year++ {
					res := r.Report(inputs(year, 10, car.CNG, car.Individual, car.Manual), 1)
					So(len(res.Factors), ShouldEqual, 2)
				}
			})
		})

		Convey("When mileage sits on each tier boundary", func() {
			mileageTier := func(kms int) string {
				return r.Report(inputs(2020, kms, car.CNG, car.Individual, car.Manual), 1).Factors[1]
			}

			Convey("Then the tiers should split at 30000 and 80000", func() {
				So(mileageTier(0), ShouldEqual, valuation.FactorLowMileage)
				So(mileageTier(30000), ShouldEqual, valuation.FactorLowMileage)
				So(mileageTier(30001), ShouldEqual, valuation.FactorAverageMileage)
				So(mileageTier(80000), ShouldEqual, valuation.FactorAverageMileage)
				So(mileageTier(80001), ShouldEqual, valuation.FactorHighMileage)
				So(mileageTier(car.MaxKmsDriven), ShouldEqual, valuation.FactorHighMileage)
			})
		})

		Convey("When a custom rule table is supplied", func() {
			custom := valuation.NewReporter(
				valuation.WithReferenceYear(2026),
				valuation.WithRules([]valuation.Rule{
					{When: func(s valuation.Subject) bool { return s.Owner > 1 }, Message: "several previous owners"},
				}),
			)
			in := inputs(2020, 10, car.CNG, car.Individual, car.Manual)
			in.Owner = 3

			Convey("Then only that table should be evaluated", func() {
				So(custom.Report(in, 1).Factors, ShouldResemble, []string{"several previous owners"})
			})
		})
	})
}

func TestGauge(t *testing.T) {
	Convey("Given a 5 lakh showroom price", t, func() {
		g := valuation.NewGauge(5.0, 4.0)

		Convey("Then the dial should be scaled to 120 percent", func() {
			So(g.Max, ShouldAlmostEqual, 6.0, epsilon)
			So(g.Value, ShouldEqual, 4.0)
			So(g.Threshold, ShouldEqual, 5.0)
			So(g.Bands, ShouldHaveLength, 3)
			So(g.Bands[0].To, ShouldAlmostEqual, 1.5, epsilon)
			So(g.Bands[1].From, ShouldAlmostEqual, 1.5, epsilon)
			So(g.Bands[1].To, ShouldAlmostEqual, 3.5, epsilon)
			So(g.Bands[2].To, ShouldAlmostEqual, 6.0, epsilon)
		})
	})

	Convey("Given a zero showroom price", t, func() {
		g := valuation.NewGauge(0, 0.4)

		Convey("Then the dial should keep a one lakh minimum", func() {
			So(g.Max, ShouldEqual, 1.0)
		})
	})
}
