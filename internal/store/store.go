package store

import (
	"context"
	"errors"
	"strings"

	"github.com/joestump/leetdeck/internal/logger"
)

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConstraint is returned when a write would violate a uniqueness
	// constraint. Inserting a problem that is already stored is a dedup bug,
	// so callers treat it as fatal.
	ErrConstraint = errors.New("constraint violation")
)

// ProblemStoreIface is the whole read/write surface over stored problems.
// Nothing else in leetdeck queries the problem tables directly.
type ProblemStoreIface interface {
	ProblemExists(ctx context.Context, displayID int64) (bool, error)
	UpsertProblem(ctx context.Context, p *Problem, tags []Tag) error
	GetBySlug(ctx context.Context, slug string) (*Problem, error)
	ListProblems(ctx context.Context) ([]*Problem, error)
	TagsOf(ctx context.Context, problemID string) ([]*Tag, error)
	Count(ctx context.Context) (int, error)
	SolutionOf(ctx context.Context, problemID string) (*Solution, error)
	SetSolution(ctx context.Context, problemID, content string) error
}

var _ ProblemStoreIface = (*ProblemStore)(nil)

// queryLog rebinds statements for the active driver and, when a debug logger
// is configured, records each one before it runs.
type queryLog struct {
	log logger.Logger
}

func newQueryLog(l logger.Logger) queryLog {
	if l == nil {
		l = logger.NewNop()
	}
	return queryLog{log: l}
}

func (q queryLog) rebind(db interface{ Rebind(string) string }, query string) string {
	query = db.Rebind(query)
	q.log.Debug("sql", logger.String("query", strings.Join(strings.Fields(query), " ")))
	return query
}

// isUniqueConstraintError checks whether err indicates a unique constraint violation.
// Works across SQLite, PostgreSQL, and MySQL.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || // SQLite & PostgreSQL
		strings.Contains(msg, "duplicate key") || // PostgreSQL
		strings.Contains(msg, "duplicate entry") // MySQL
}
