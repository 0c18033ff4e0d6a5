package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/milden6/flatdawg"
)

// Rejection reasons used as the "reason" label.
const (
	ReasonOrder    = "order"
	ReasonTooLong  = "too_long"
	ReasonEmpty    = "empty"
	ReasonCapacity = "capacity"
)

// Metrics holds the flatdawg collectors. Each instance owns its registry so
// builds and servers in one process do not collide.
type Metrics struct {
	Registry *prometheus.Registry

	WordsAdded    prometheus.Counter
	WordsRejected *prometheus.CounterVec
	GraphEdges    prometheus.Gauge
	NodesStored   prometheus.Gauge
	NodesShared   prometheus.Counter
	HashProbes    prometheus.Counter
	BuildDuration prometheus.Histogram
	Lookups       *prometheus.CounterVec
}

// New creates and registers the collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		WordsAdded: f.NewCounter(prometheus.CounterOpts{
			Name: "flatdawg_words_added_total",
			Help: "Total number of distinct words added to a graph.",
		}),

		WordsRejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "flatdawg_words_rejected_total",
			Help: "Total number of words rejected while building, labelled by reason.",
		}, []string{"reason"}),

		GraphEdges: f.NewGauge(prometheus.GaugeOpts{
			Name: "flatdawg_graph_edges",
			Help: "Number of edges in the most recently built graph.",
		}),

		NodesStored: f.NewGauge(prometheus.GaugeOpts{
			Name: "flatdawg_nodes_stored",
			Help: "Number of distinct nodes in the most recently built graph.",
		}),

		NodesShared: f.NewCounter(prometheus.CounterOpts{
			Name: "flatdawg_nodes_shared_total",
			Help: "Total number of finished nodes that reused an identical stored node.",
		}),

		HashProbes: f.NewCounter(prometheus.CounterOpts{
			Name: "flatdawg_hash_probes_total",
			Help: "Total number of node table probes.",
		}),

		BuildDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "flatdawg_build_duration_seconds",
			Help:    "Time taken to build a graph from a word list.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),

		Lookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "flatdawg_lookups_total",
			Help: "Total number of word lookups served, labelled by result.",
		}, []string{"result"}),
	}
}

// ObserveBuild records the outcome of one builder run.
func (m *Metrics) ObserveBuild(st flatdawg.Stats, took time.Duration) {
	m.WordsAdded.Add(float64(st.Words))
	m.GraphEdges.Set(float64(st.Edges))
	m.NodesStored.Set(float64(st.NodesStored))
	m.NodesShared.Add(float64(st.NodesShared))
	m.HashProbes.Add(float64(st.Probes))
	m.BuildDuration.Observe(took.Seconds())
}

// Reject counts one rejected word.
func (m *Metrics) Reject(reason string) {
	m.WordsRejected.WithLabelValues(reason).Inc()
}

// Lookup counts one lookup.
func (m *Metrics) Lookup(found bool) {
	result := "miss"
	if found {
		result = "hit"
	}
	m.Lookups.WithLabelValues(result).Inc()
}

// WriteTextfile writes the current values in the text exposition format,
// for the node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
