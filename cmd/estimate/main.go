package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/carprice/internal/estimatecli"
)

// Default configuration constants.
const (
	defaultTimeout = 10 * time.Second
	defaultYear    = 2015
	defaultPrice   = 5.0
	defaultKms     = 50000
)

func main() {
	var (
		baseURL      = flag.String("url", "http://localhost:9080", "Base URL of the service")
		year         = flag.Int("year", defaultYear, "Manufacturing year")
		price        = flag.Float64("price", defaultPrice, "Present ex-showroom price in lakhs")
		kms          = flag.Int("kms", defaultKms, "Kilometres driven")
		fuel         = flag.String("fuel", "Petrol", "Fuel type: Petrol, Diesel or CNG")
		seller       = flag.String("seller", "Dealer", "Seller type: Dealer or Individual")
		transmission = flag.String("transmission", "Manual", "Transmission: Manual or Automatic")
		owner        = flag.Int("owner", 0, "Number of previous owners")
		examples     = flag.Bool("examples", false, "Value the service's sample cars")
		asJSON       = flag.Bool("json", false, "Print the raw JSON response")
		timeout      = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose      = flag.Bool("verbose", false, "Enable verbose logging")
		help         = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		estimatecli.ShowHelp(os.Stdout)
		return
	}

	if err := estimatecli.SetupLogging(*verbose); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	cfg := &estimatecli.Config{
		BaseURL: *baseURL,
		Timeout: *timeout,
		Request: estimatecli.Request{
			Year:         *year,
			PresentPrice: *price,
			KmsDriven:    *kms,
			FuelType:     *fuel,
			SellerType:   *seller,
			Transmission: *transmission,
			Owner:        *owner,
		},
		Examples: *examples,
		JSON:     *asJSON,
		Verbose:  *verbose,
	}

	if err := estimatecli.Run(ctx, cfg, os.Stdout); err != nil {
		os.Stderr.WriteString("Estimate failed: " + err.Error() + "\n")
		cancel()
		os.Exit(1)
	}
}
