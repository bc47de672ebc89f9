package metrics

import (
	"strings"
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

			Convey("Then its metrics are registered under the default namespace", func() {
				So(manager, ShouldNotBeNil)
				manager.onboardings.Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				found := false
				for _, f := range families {
					if f.GetName() == "swigup_hydration_onboardings_total" {
						found = true
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.periodsStarted.Inc()

			Convey("Then names and labels follow the options", func() {
				So(manager.histogramBuckets, ShouldResemble, []float64{0.1, 0.5, 1.0})
				expected := `
# HELP test_unit_periods_started_total Period rollovers
# TYPE test_unit_periods_started_total counter
test_unit_periods_started_total{env="test"} 1
`
				err := testutil.GatherAndCompare(registry, strings.NewReader(expected), "test_unit_periods_started_total")
				So(err, ShouldBeNil)
			})
		})

		Convey("When empty options are passed", func() {
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithCustomLabels(nil),
				WithPrometheusRegistry(nil),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then the defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "swigup")
				So(manager.subsystem, ShouldEqual, "hydration")
				So(manager.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When intake is recorded", func() {
			beforeMl := testutil.ToFloat64(globalManager.intakeMl.WithLabelValues("scan"))
			beforeEvents := testutil.ToFloat64(globalManager.intakeEvents.WithLabelValues("scan"))
			RecordIntake("scan", 500)
			RecordIntake("scan", 250)

			Convey("Then milliliters and events are counted per source", func() {
				So(testutil.ToFloat64(globalManager.intakeMl.WithLabelValues("scan"))-beforeMl, ShouldEqual, 750)
				So(testutil.ToFloat64(globalManager.intakeEvents.WithLabelValues("scan"))-beforeEvents, ShouldEqual, 2)
			})
		})

		Convey("When progress is updated", func() {
			UpdateGoal(2900)
			UpdateProgress(1450, 50)

			Convey("Then the gauges hold the latest values", func() {
				So(testutil.ToFloat64(globalManager.goalMl), ShouldEqual, 2900)
				So(testutil.ToFloat64(globalManager.currentMl), ShouldEqual, 1450)
				So(testutil.ToFloat64(globalManager.progressPct), ShouldEqual, 50)
			})
		})

		Convey("When a leaderboard is built", func() {
			before := testutil.ToFloat64(globalManager.leaderboardBuilds)
			RecordLeaderboardBuild(5)

			Convey("Then builds and size are recorded", func() {
				So(testutil.ToFloat64(globalManager.leaderboardBuilds)-before, ShouldEqual, 1)
				So(testutil.ToFloat64(globalManager.leaderboardSize), ShouldEqual, 5)
			})
		})

		Convey("Then the remaining recorders do not panic", func() {
			So(func() {
				RecordIntakeDuplicate()
				RecordIntakeRejected("invalid_amount")
				RecordScanFallback("structured")
				UpdateScanSessionsOpen(1)
				RecordPeriodStarted()
				RecordOnboarding()
				RecordLeaderboardError()
				RecordProfileStoreOp("load", "absent")
				RecordHTTPRequest("intake", "POST", "200")
				RecordHTTPRequestDuration("intake", "POST", "200", 3)
				RecordErrorByEndpoint("intake", "POST", "client_error")
				UpdateSystemMemoryUsage(1 << 20)
				UpdateSystemGoroutineCount(12)
				RecordSystemGCPauseTime(0.4)
			}, ShouldNotPanic)
		})

		Convey("Then the custom registry is exposed", func() {
			So(GetRegistry(), ShouldEqual, customRegistry)
		})
	})
}

func TestMetricsConcurrency(t *testing.T) {
	Convey("Given concurrent recorders", t, func() {
		before := testutil.ToFloat64(globalManager.intakeEvents.WithLabelValues("manual"))
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 50; j++ {
					RecordIntake("manual", 250)
				}
			}()
		}
		wg.Wait()

		Convey("Then no increments are lost", func() {
			So(testutil.ToFloat64(globalManager.intakeEvents.WithLabelValues("manual"))-before, ShouldEqual, 1000)
		})
	})
}
