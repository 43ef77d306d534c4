package estimatecli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/carprice/pkg/logger"
)

func init() {
	if err := logger.Init(logger.WithWriter(io.Discard)); err != nil {
		panic(err)
	}
}

var sample = Estimate{
	ID:                  "abc",
	PredictedPrice:      4,
	PresentPrice:        5,
	Depreciation:        1,
	DepreciationPercent: 20,
	PriceRange:          PriceRange{Low: 3.6, High: 4.4},
	ReferenceYear:       2024,
	CarAge:              9,
	Factors:             []string{"moderate age, average value", "average mileage"},
	Details: Details{
		Year: 2015, PresentPrice: 5, KmsDriven: 50000,
		FuelType: "Petrol", SellerType: "Dealer", Transmission: "Manual", CarAge: 9,
	},
}

func newTestServer(got *Request) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/estimate", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(got)
		if got.FuelType == "Electric" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(ErrorResponse{Code: "invalid_category", Message: "unknown fuel type"})
			return
		}
		_ = json.NewEncoder(w).Encode(sample)
	})
	mux.HandleFunc("/examples", func(w http.ResponseWriter, _ *http.Request) {
		a, b := sample, sample
		a.Label, b.Label = "Recent car", "Older car"
		_ = json.NewEncoder(w).Encode([]Estimate{a, b})
	})
	return httptest.NewServer(mux)
}

func TestRun(t *testing.T) {
	Convey("Given a running service", t, func() {
		var got Request
		srv := newTestServer(&got)
		defer srv.Close()

		cfg := &Config{
			BaseURL: srv.URL + "/",
			Timeout: 5 * time.Second,
			Request: Request{Year: 2015, PresentPrice: 5, KmsDriven: 50000, FuelType: "Petrol", SellerType: "Dealer", Transmission: "Manual"},
		}
		var out bytes.Buffer

		Convey("When requesting one estimate", func() {
			err := Run(context.Background(), cfg, &out)

			Convey("Then the car should be posted and the report printed", func() {
				So(err, ShouldBeNil)
				So(got, ShouldResemble, cfg.Request)
				So(out.String(), ShouldContainSubstring, "Predicted price:   ₹ 4.00 Lakhs")
				So(out.String(), ShouldContainSubstring, "Depreciation %:    20.0%")
				So(out.String(), ShouldContainSubstring, "₹ 3.60 Lakhs to ₹ 4.40 Lakhs")
				So(out.String(), ShouldContainSubstring, "  - average mileage")
				So(out.String(), ShouldContainSubstring, "2015 (9 years old)")
			})
		})

		Convey("When JSON output is requested", func() {
			cfg.JSON = true
			So(Run(context.Background(), cfg, &out), ShouldBeNil)

			Convey("Then the raw body should be printed", func() {
				var e Estimate
				So(json.Unmarshal(out.Bytes(), &e), ShouldBeNil)
				So(e.ID, ShouldEqual, "abc")
			})
		})

		Convey("When requesting the sample cars", func() {
			cfg.Examples = true
			So(Run(context.Background(), cfg, &out), ShouldBeNil)

			Convey("Then each sample should be reported under its label", func() {
				So(out.String(), ShouldContainSubstring, "Recent car\n==========")
				So(out.String(), ShouldContainSubstring, "Older car\n=========")
			})
		})

		Convey("When the service rejects the car", func() {
			cfg.Request.FuelType = "Electric"
			err := Run(context.Background(), cfg, &out)

			Convey("Then the service message should be surfaced", func() {
				So(errors.Is(err, ErrRequest), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "400 invalid_category: unknown fuel type")
				So(out.Len(), ShouldEqual, 0)
			})
		})
	})

	Convey("Given no service listening", t, func() {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		Convey("Then the request should fail", func() {
			err := Run(context.Background(), &Config{BaseURL: url, Timeout: time.Second}, io.Discard)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestShowHelp(t *testing.T) {
	Convey("Given the help text", t, func() {
		var out bytes.Buffer
		ShowHelp(&out)
		So(out.String(), ShouldContainSubstring, "-examples")
		So(out.String(), ShouldContainSubstring, "-transmission")
	})
}
