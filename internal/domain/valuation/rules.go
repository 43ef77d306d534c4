package valuation

import "github.com/okian/carprice/internal/domain/car"

// Price factor messages.
const (
	FactorVeryNew        = "very new, minimal depreciation"
	FactorRelativelyNew  = "relatively new, good resale"
	FactorModerateAge    = "moderate age, average value"
	FactorOlder          = "older car, higher depreciation"
	FactorLowMileage     = "low mileage, adds value"
	FactorAverageMileage = "average mileage"
	FactorHighMileage    = "high mileage, reduces value"
	FactorAutomatic      = "automatic, premium pricing"
	FactorDiesel         = "preferred for high usage"
	FactorPetrol         = "standard option"
	FactorDealerWarranty = "may offer better warranty"
)

const (
	lowMileageCeiling     = 30_000
	averageMileageCeiling = 80_000
)

// Subject is what factor rules look at: the inputs plus the derived age.
type Subject struct {
	car.Inputs
	Age int
}

// Rule emits Message when When holds.
type Rule struct {
	When    func(Subject) bool
	Message string
}

// Evaluate runs rules in order and collects the messages of those that match.
func Evaluate(rules []Rule, s Subject) []string {
	factors := make([]string, 0, len(rules))
	for _, rule := range rules {
		if rule.When(s) {
			factors = append(factors, rule.Message)
		}
	}
	return factors
}

// DefaultRules returns the factor table: one age tier, one mileage tier,
// then transmission, fuel and seller remarks.
func DefaultRules() []Rule {
	return []Rule{
		{func(s Subject) bool { return s.Age <= 2 }, FactorVeryNew},
		{func(s Subject) bool { return s.Age > 2 && s.Age < 5 }, FactorRelativelyNew},
		{func(s Subject) bool { return s.Age >= 5 && s.Age <= 10 }, FactorModerateAge},
		{func(s Subject) bool { return s.Age > 10 }, FactorOlder},

		{func(s Subject) bool { return s.KmsDriven <= lowMileageCeiling }, FactorLowMileage},
		{func(s Subject) bool {
			return s.KmsDriven > lowMileageCeiling && s.KmsDriven <= averageMileageCeiling
		}, FactorAverageMileage},
		{func(s Subject) bool { return s.KmsDriven > averageMileageCeiling }, FactorHighMileage},

		{func(s Subject) bool { return s.Transmission == car.Automatic }, FactorAutomatic},

		{func(s Subject) bool { return s.FuelType == car.Diesel }, FactorDiesel},
		{func(s Subject) bool { return s.FuelType == car.Petrol }, FactorPetrol},

		{func(s Subject) bool { return s.SellerType == car.Dealer }, FactorDealerWarranty},
	}
}
