package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Batch outcome label values.
const (
	BatchOK     = "ok"
	BatchFailed = "failed"
)

// RunCollector bundles the Prometheus metrics of a single weighted-distance run.
// A nil *RunCollector is valid and records nothing.
type RunCollector struct {
	registry *prometheus.Registry

	RowsLoaded      prometheus.Counter
	RowsDropped     prometheus.Counter
	Batches         *prometheus.CounterVec
	Unavailable     prometheus.Counter
	WeightedAverage prometheus.Gauge
}

// NewRunCollector registers the run metrics on a fresh registry.
func NewRunCollector() (*RunCollector, error) {
	reg := prometheus.NewRegistry()

	c := &RunCollector{
		registry: reg,
		RowsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lga_rows_loaded_total",
			Help: "Region rows kept by the loader.",
		}),
		RowsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lga_rows_dropped_total",
			Help: "Region rows dropped because they did not parse.",
		}),
		Batches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lga_distance_batches_total",
			Help: "Distance-matrix batch queries, labeled by outcome.",
		}, []string{"outcome"}),
		Unavailable: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lga_distance_unavailable_total",
			Help: "Regions whose distance could not be resolved.",
		}),
		WeightedAverage: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lga_weighted_average_distance_km",
			Help: "Population-weighted average distance of the last run in kilometers.",
		}),
	}

	for _, col := range []prometheus.Collector{c.RowsLoaded, c.RowsDropped, c.Batches, c.Unavailable, c.WeightedAverage} {
		if err := reg.Register(col); err != nil {
			return nil, fmt.Errorf("register run metrics: %w", err)
		}
	}

	return c, nil
}

func (c *RunCollector) ObserveLoad(kept, dropped int) {
	if c == nil {
		return
	}
	c.RowsLoaded.Add(float64(kept))
	c.RowsDropped.Add(float64(dropped))
}

func (c *RunCollector) ObserveBatch(failed bool) {
	if c == nil {
		return
	}
	outcome := BatchOK
	if failed {
		outcome = BatchFailed
	}
	c.Batches.WithLabelValues(outcome).Inc()
}

func (c *RunCollector) ObserveResult(unavailable int, averageKm float64) {
	if c == nil {
		return
	}
	c.Unavailable.Add(float64(unavailable))
	c.WeightedAverage.Set(averageKm)
}

// Gatherer exposes the run registry, mainly for tests.
func (c *RunCollector) Gatherer() prometheus.Gatherer {
	return c.registry
}

// WriteTextfile writes the metrics in text exposition format for the
// node-exporter textfile collector.
func (c *RunCollector) WriteTextfile(path string) error {
	if c == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("write metrics textfile %q: %w", path, err)
	}
	return nil
}
