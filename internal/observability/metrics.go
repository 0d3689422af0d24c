package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the cleaning
// pipeline.
type Metrics struct {
	RecordsRead    prometheus.Counter
	RecordsWritten prometheus.Counter
	RowsSkipped    prometheus.Counter

	RuleDrops      *prometheus.CounterVec // labels: source, rule
	ValidatorFlags *prometheus.CounterVec // labels: flag
	ValidatorDrops prometheus.Counter

	RunDuration prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RecordsRead,
		m.RecordsWritten,
		m.RowsSkipped,
		m.RuleDrops,
		m.ValidatorFlags,
		m.ValidatorDrops,
		m.RunDuration,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RecordsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "occurrence_etl",
			Name:      "records_read_total",
			Help:      "Total occurrence records loaded from input files.",
		}),
		RecordsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "occurrence_etl",
			Name:      "records_written_total",
			Help:      "Total cleaned records written to output.",
		}),
		RowsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "occurrence_etl",
			Name:      "rows_skipped_total",
			Help:      "Input rows skipped for unparseable coordinates.",
		}),
		RuleDrops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "occurrence_etl",
			Name:      "rule_drops_total",
			Help:      "Records removed per cleaning rule.",
		}, []string{"source", "rule"}),
		ValidatorFlags: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "occurrence_etl",
			Name:      "validator_flags_total",
			Help:      "Coordinate validator flags raised, by anomaly class.",
		}, []string{"flag"}),
		ValidatorDrops: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "occurrence_etl",
			Name:      "validator_drops_total",
			Help:      "Records removed by the coordinate validator.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "occurrence_etl",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete load-clean-validate-write run.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
	}
}
