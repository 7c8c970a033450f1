package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a dedicated registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "circuito")
				So(manager.subsystem, ShouldEqual, "ranking")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("site"),
				WithHistogramBuckets([]float64{1, 10}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options should be applied", func() {
				So(manager.namespace, ShouldEqual, "test")
				So(manager.subsystem, ShouldEqual, "site")
				So(manager.histogramBuckets, ShouldResemble, []float64{1, 10})
			})

			Convey("And recorded loads should be exported with the new names", func() {
				manager.RecordCSVLoad("ok", 3)
				manager.RecordCSVLoad("ok", 4)

				So(testutil.ToFloat64(manager.csvLoads.WithLabelValues("ok")), ShouldEqual, 2)

				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(strings.Join(names, ","), ShouldContainSubstring, "test_site_csv_loads_total")
			})
		})

		Convey("When empty options are given", func() {
			manager := NewManager(
				WithNamespace(""),
				WithHistogramBuckets(nil),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "circuito")
				So(len(manager.histogramBuckets), ShouldBeGreaterThan, 0)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording page renders", func() {
			before := testutil.ToFloat64(globalManager.pageRenders.WithLabelValues("mestres", "ready"))
			RecordPageRender("mestres", "ready")

			Convey("Then the counter should increase", func() {
				So(testutil.ToFloat64(globalManager.pageRenders.WithLabelValues("mestres", "ready")), ShouldEqual, before+1)
			})
		})

		Convey("When recording tables", func() {
			before := testutil.ToFloat64(globalManager.tablesRendered.WithLabelValues("true"))
			RecordTableRendered(true)

			Convey("Then empty tables are labelled", func() {
				So(testutil.ToFloat64(globalManager.tablesRendered.WithLabelValues("true")), ShouldEqual, before+1)
			})
		})

		Convey("When updating gauges", func() {
			UpdateDatasetRecords(42)
			UpdateSystemGoroutineCount(7)

			Convey("Then they should hold the last value", func() {
				So(testutil.ToFloat64(globalManager.datasetRecords), ShouldEqual, 42)
				So(testutil.ToFloat64(globalManager.systemGoroutineCount), ShouldEqual, 7)
			})
		})

		Convey("When recording HTTP and error metrics", func() {
			Convey("Then nothing should panic", func() {
				So(func() {
					RecordCSVLoad("fetch_error", 12)
					RecordHTTPRequest("ranking-geral", "GET", "200")
					RecordHTTPRequestDuration("ranking-geral", "GET", "200", 5.0)
					RecordErrorByType("not_found", "medium")
					RecordErrorByEndpoint("api_ranking", "GET", "client_error")
					UpdateSystemMemoryUsage(1 << 20)
				}, ShouldNotPanic)
			})
		})

		Convey("Then the registry should be shared", func() {
			So(GetRegistry(), ShouldEqual, customRegistry)
		})
	})
}
