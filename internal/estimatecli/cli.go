// Package estimatecli implements a command line client for the valuation
// service.
package estimatecli

import (
	"fmt"
	"io"
	"os"

	"github.com/okian/carprice/pkg/logger"
)

// SetupLogging routes CLI logs to stderr so stdout carries only the report.
func SetupLogging(verbose bool) error {
	if err := logger.Init(logger.WithWriter(os.Stderr)); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	level := "warn"
	if verbose {
		level = "debug"
	}
	return logger.SetLevelString(level)
}

// ShowHelp prints usage information for the estimate tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `Car Price Estimate Tool
=======================

Asks a running valuation service for the resale price of one car.

Usage:
  estimate [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -year int
        Manufacturing year, 2000-2024 (default 2015)
  -price float
        Present ex-showroom price in lakhs, 0-50 (default 5)
  -kms int
        Kilometres driven, 0-500000 (default 50000)
  -fuel string
        Petrol, Diesel or CNG (default "Petrol")
  -seller string
        Dealer or Individual (default "Dealer")
  -transmission string
        Manual or Automatic (default "Manual")
  -owner int
        Number of previous owners, 0-3 (default 0)
  -examples
        Value the service's sample cars instead
  -json
        Print the raw JSON response
  -timeout duration
        HTTP request timeout (default 10s)
  -verbose
        Enable debug logging on stderr
  -help
        Show this help message

Examples:
  estimate -year 2018 -price 9.5 -kms 25000 -fuel Diesel -transmission Automatic
  estimate -examples -url http://localhost:8080
`)
}
