package estimatecli

import (
	"fmt"
	"io"
	"strings"
)

func lakhs(v float64) string { return fmt.Sprintf("₹ %.2f Lakhs", v) }

// Render writes a text report of e.
func Render(w io.Writer, e Estimate) error {
	var b strings.Builder
	title := "Estimated price"
	if e.Label != "" {
		title = e.Label
	}
	fmt.Fprintf(&b, "%s\n%s\n", title, strings.Repeat("=", len(title)))
	fmt.Fprintf(&b, "Predicted price:   %s\n", lakhs(e.PredictedPrice))
	fmt.Fprintf(&b, "Depreciation:      %s\n", lakhs(e.Depreciation))
	fmt.Fprintf(&b, "Depreciation %%:    %.1f%%\n", e.DepreciationPercent)
	fmt.Fprintf(&b, "Expected range:    %s to %s\n", lakhs(e.PriceRange.Low), lakhs(e.PriceRange.High))

	if len(e.Factors) > 0 {
		b.WriteString("\nPrice factors:\n")
		for _, f := range e.Factors {
			fmt.Fprintf(&b, "  - %s\n", f)
		}
	}

	d := e.Details
	b.WriteString("\nCar details:\n")
	fmt.Fprintf(&b, "  Year:          %d (%d years old)\n", d.Year, d.CarAge)
	fmt.Fprintf(&b, "  Present price: %s\n", lakhs(d.PresentPrice))
	fmt.Fprintf(&b, "  Kms driven:    %d\n", d.KmsDriven)
	fmt.Fprintf(&b, "  Fuel type:     %s\n", d.FuelType)
	fmt.Fprintf(&b, "  Seller type:   %s\n", d.SellerType)
	fmt.Fprintf(&b, "  Transmission:  %s\n", d.Transmission)
	fmt.Fprintf(&b, "  Owners:        %d\n", d.Owner)

	_, err := io.WriteString(w, b.String())
	return err
}
