package metrics

import (
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then collectors should be registered there", func() {
				So(manager, ShouldNotBeNil)
				manager.estimatesTotal.Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_ns"),
				WithSubsystem("test_sub"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithPriceBuckets([]float64{1, 2}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then names should use the namespace and subsystem", func() {
				manager.estimatesTotal.Inc()
				count, err := testutil.GatherAndCount(registry, "test_ns_test_sub_estimates_total")
				So(err, ShouldBeNil)
				So(count, ShouldEqual, 1)
			})
		})

		Convey("When options carry empty values", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithConstLabels(nil),
				WithPrometheusRegistry(registry),
			)

			Convey("Then defaults should be kept", func() {
				So(manager.namespace, ShouldEqual, "carprice")
				So(manager.subsystem, ShouldEqual, "valuation")
				So(manager.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording an estimate", func() {
			before := testutil.ToFloat64(globalManager.estimatesTotal)
			RecordEstimate(4.0, 20.0, 1.5)

			Convey("Then the estimate counter should advance", func() {
				So(testutil.ToFloat64(globalManager.estimatesTotal), ShouldEqual, before+1)
			})
		})

		Convey("When recording estimate errors and factors", func() {
			RecordEstimateError("prediction")
			RecordFactor("standard option")

			Convey("Then labelled counters should be populated", func() {
				So(testutil.ToFloat64(globalManager.estimateErrors.WithLabelValues("prediction")), ShouldBeGreaterThanOrEqualTo, 1)
				So(testutil.ToFloat64(globalManager.factorsEmitted.WithLabelValues("standard option")), ShouldBeGreaterThanOrEqualTo, 1)
			})
		})

		Convey("When toggling model readiness", func() {
			SetModelLoaded(true)
			loaded := testutil.ToFloat64(globalManager.modelLoaded)
			SetModelLoaded(false)

			Convey("Then the gauge should follow", func() {
				So(loaded, ShouldEqual, 1)
				So(testutil.ToFloat64(globalManager.modelLoaded), ShouldEqual, 0)
			})
		})

		Convey("When recording HTTP, error and system metrics", func() {
			So(func() {
				RecordModelLoad(12)
				RecordModelLoadError("file")
				RecordHTTPRequest("estimate", "POST", "200")
				RecordHTTPRequestDuration("estimate", "POST", "200", 3)
				RecordErrorByType("client_error", "medium")
				RecordErrorByEndpoint("estimate", "POST", "client_error")
				RecordErrorLatency("http", "client_error", 1)
				UpdateSystemMemoryUsage(1 << 20)
				UpdateSystemGoroutineCount(8)
				RecordSystemGCPauseTime(0.4)
			}, ShouldNotPanic)
		})

		Convey("When recording concurrently", func() {
			var wg sync.WaitGroup
			for i := 0; i < 20; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					RecordEstimate(3, 10, 1)
					RecordHTTPRequest("estimate", "POST", "200")
				}()
			}
			wg.Wait()

			Convey("Then the registry should still gather cleanly", func() {
				_, err := GetRegistry().Gather()
				So(err, ShouldBeNil)
			})
		})
	})
}
