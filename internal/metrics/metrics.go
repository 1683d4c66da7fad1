package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProblemsAddedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leetdeck_problems_added_total",
		Help: "Problems fetched and stored for the first time.",
	})

	ProblemsSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leetdeck_problems_skipped_total",
		Help: "Solved problems skipped because they were already stored.",
	})

	FetchFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leetdeck_fetch_failures_total",
		Help: "Detail fetches that failed and were skipped.",
	})

	RemoteRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "leetdeck_remote_request_duration_seconds",
		Help:    "Round-trip time of requests to the problem archive.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"operation", "status"})

	NotesRenderedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leetdeck_notes_rendered_total",
		Help: "Study-card notes written to a deck package.",
	})

	ProblemsStored = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "leetdeck_problems_stored",
		Help: "Problems present in the local store.",
	})
)

// WriteTextfile writes every registered metric to path in the text exposition
// format read by node_exporter's textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
