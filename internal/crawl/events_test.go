package crawl

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/joestump/leetdeck/internal/logger"
	"github.com/joestump/leetdeck/internal/metrics"
)

func TestLogEvents_Counters(t *testing.T) {
	ev := LogEvents{Log: logger.NewNop()}

	added := testutil.ToFloat64(metrics.ProblemsAddedTotal)
	failed := testutil.ToFloat64(metrics.FetchFailuresTotal)

	ev.ProblemFetched("two-sum", 1)
	ev.FetchFailed("add-two-numbers", errors.New("boom"))
	ev.ProblemsAdded(1)

	assert.Equal(t, added+1, testutil.ToFloat64(metrics.ProblemsAddedTotal))
	assert.Equal(t, failed+1, testutil.ToFloat64(metrics.FetchFailuresTotal))
}
