package crawl

import (
	"github.com/joestump/leetdeck/internal/logger"
	"github.com/joestump/leetdeck/internal/metrics"
)

// Events receives progress from the orchestrator.
type Events interface {
	// ProblemFetched is called after a problem has been fetched and stored.
	ProblemFetched(slug string, displayID int64)
	// ProblemsAdded is called once at the end of a run with the number of
	// problems stored by it.
	ProblemsAdded(count int)
	// FetchFailed is called when a problem is skipped because its fetch failed.
	FetchFailed(slug string, cause error)
}

// LogEvents reports crawl progress on a structured logger and the crawl
// counters in internal/metrics.
type LogEvents struct {
	Log logger.Logger
}

func (e LogEvents) ProblemFetched(slug string, displayID int64) {
	metrics.ProblemsAddedTotal.Inc()
	e.Log.Info("fetched problem", logger.String("slug", slug), logger.Int64("display_id", displayID))
}

func (e LogEvents) ProblemsAdded(count int) {
	e.Log.Info("crawl finished", logger.Int("added", count))
}

func (e LogEvents) FetchFailed(slug string, cause error) {
	metrics.FetchFailuresTotal.Inc()
	e.Log.Warn("skipping problem", logger.String("slug", slug), logger.Error(cause))
}

type nopEvents struct{}

func (nopEvents) ProblemFetched(string, int64) {}
func (nopEvents) ProblemsAdded(int)            {}
func (nopEvents) FetchFailed(string, error)    {}
