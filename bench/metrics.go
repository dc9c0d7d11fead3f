package bench

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects benchmark measurements on a private registry. The
// benchmark exposes no listener; use WriteTextfile to export a snapshot.
type Metrics struct {
	registry *prometheus.Registry

	SearchLatencySeconds *prometheus.HistogramVec
	SearchesTotal        *prometheus.CounterVec
	SearchErrorsTotal    *prometheus.CounterVec
	AverageLatencyNanos  *prometheus.GaugeVec
	CorpusVectors        prometheus.Gauge
	CorpusDimension      prometheus.Gauge
}

// NewMetrics creates and registers the benchmark collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		SearchLatencySeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "vecbench_search_latency_seconds",
				Help:    "Wall-clock latency of a single brute-force top-k search",
				Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16),
			},
			[]string{"top_k"},
		),
		SearchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vecbench_searches_total",
				Help: "Total number of timed searches",
			},
			[]string{"top_k"},
		),
		SearchErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vecbench_search_errors_total",
				Help: "Total number of aborted top-k benchmarks",
			},
			[]string{"top_k"},
		),
		AverageLatencyNanos: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "vecbench_average_latency_nanoseconds",
				Help: "Mean search latency of the last completed run per top_k",
			},
			[]string{"top_k"},
		),
		CorpusVectors: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vecbench_corpus_vectors",
			Help: "Number of vectors in the searched corpus",
		}),
		CorpusDimension: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vecbench_corpus_dimension",
			Help: "Dimension of the searched corpus",
		}),
	}
	m.registry.MustRegister(
		m.SearchLatencySeconds,
		m.SearchesTotal,
		m.SearchErrorsTotal,
		m.AverageLatencyNanos,
		m.CorpusVectors,
		m.CorpusDimension,
	)
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveSearch records one timed search for k.
func (m *Metrics) ObserveSearch(k int, d time.Duration) {
	label := strconv.Itoa(k)
	m.SearchLatencySeconds.WithLabelValues(label).Observe(d.Seconds())
	m.SearchesTotal.WithLabelValues(label).Inc()
}

// ObserveError counts a benchmark for k aborted by a search error.
func (m *Metrics) ObserveError(k int) {
	m.SearchErrorsTotal.WithLabelValues(strconv.Itoa(k)).Inc()
}

// SetAverage publishes the mean latency of the completed runs for k.
func (m *Metrics) SetAverage(k int, d time.Duration) {
	m.AverageLatencyNanos.WithLabelValues(strconv.Itoa(k)).Set(float64(d.Nanoseconds()))
}

// SetCorpus publishes the corpus shape.
func (m *Metrics) SetCorpus(vectors, dimension int) {
	m.CorpusVectors.Set(float64(vectors))
	m.CorpusDimension.Set(float64(dimension))
}

// WriteTextfile writes the current values in the Prometheus text format,
// suitable for the node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
