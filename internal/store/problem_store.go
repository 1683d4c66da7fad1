package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/joestump/leetdeck/internal/logger"
)

// Problem represents a row in the problems table.
type Problem struct {
	ID          string    `db:"id"`
	DisplayID   int64     `db:"display_id"`
	Level       string    `db:"level"`
	Title       string    `db:"title"`
	Slug        string    `db:"slug"`
	Description string    `db:"description"`
	Accepted    bool      `db:"accepted"`
	CreatedAt   time.Time `db:"created_at"`
}

// Solution represents a row in the solutions table.
type Solution struct {
	ProblemID string    `db:"problem_id"`
	Content   string    `db:"content"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ProblemStore is the sqlx-backed implementation of ProblemStoreIface.
type ProblemStore struct {
	db   *sqlx.DB
	tags *TagStore
	ql   queryLog
}

// NewProblemStore returns a ProblemStore. A nil log disables statement logging.
func NewProblemStore(db *sqlx.DB, tags *TagStore, log logger.Logger) *ProblemStore {
	return &ProblemStore{db: db, tags: tags, ql: newQueryLog(log)}
}

// ProblemExists reports whether a problem with the given display id is stored.
func (s *ProblemStore) ProblemExists(ctx context.Context, displayID int64) (bool, error) {
	var n int
	err := s.db.GetContext(ctx, &n, s.ql.rebind(s.db, `SELECT COUNT(*) FROM problems WHERE display_id = ?`), displayID)
	if err != nil {
		return false, fmt.Errorf("check problem %d: %w", displayID, err)
	}
	return n > 0, nil
}

// UpsertProblem stores a new problem together with its tags in a single
// transaction. Tags are reused by slug and created when unknown; a slug
// repeated in tags is linked once. The problem itself must be new: a
// duplicate display id or slug fails with ErrConstraint.
//
// p.ID and p.CreatedAt are filled in on success.
func (s *ProblemStore) UpsertProblem(ctx context.Context, p *Problem, tags []Tag) error {
	id := p.ID
	if id == "" {
		id = uuid.New().String()
	}
	now := time.Now().UTC()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, s.ql.rebind(tx, `
		INSERT INTO problems (id, display_id, level, title, slug, description, accepted, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`), id, p.DisplayID, p.Level, p.Title, p.Slug, p.Description, p.Accepted, now)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: problem %d (%s) already stored: %v", ErrConstraint, p.DisplayID, p.Slug, err)
		}
		return fmt.Errorf("insert problem %d: %w", p.DisplayID, err)
	}

	linked := make(map[string]bool, len(tags))
	for _, t := range tags {
		tag, err := s.tags.upsertTx(ctx, tx, t)
		if err != nil {
			return fmt.Errorf("upsert tag %q: %w", t.Name, err)
		}
		if linked[tag.Slug] {
			continue
		}
		linked[tag.Slug] = true

		_, err = tx.ExecContext(ctx, s.ql.rebind(tx, `
			INSERT INTO problem_tags (problem_id, tag_slug) VALUES (?, ?)
		`), id, tag.Slug)
		if err != nil {
			if isUniqueConstraintError(err) {
				return fmt.Errorf("%w: problem %d already linked to tag %q", ErrConstraint, p.DisplayID, tag.Slug)
			}
			return fmt.Errorf("link tag %q: %w", tag.Slug, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	p.ID = id
	p.CreatedAt = now
	return nil
}

// GetBySlug returns the problem matching slug, or ErrNotFound.
func (s *ProblemStore) GetBySlug(ctx context.Context, slug string) (*Problem, error) {
	var p Problem
	err := s.db.GetContext(ctx, &p, s.ql.rebind(s.db, `SELECT * FROM problems WHERE slug = ?`), slug)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListProblems returns every stored problem ordered by display id. Deck
// output relies on this order being stable.
func (s *ProblemStore) ListProblems(ctx context.Context) ([]*Problem, error) {
	var problems []*Problem
	err := s.db.SelectContext(ctx, &problems, s.ql.rebind(s.db, `SELECT * FROM problems ORDER BY display_id ASC`))
	if err != nil {
		return nil, err
	}
	return problems, nil
}

// TagsOf returns the tags linked to a problem, ordered by slug.
func (s *ProblemStore) TagsOf(ctx context.Context, problemID string) ([]*Tag, error) {
	return s.tags.ListByProblem(ctx, problemID)
}

// Count returns the number of stored problems.
func (s *ProblemStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n, s.ql.rebind(s.db, `SELECT COUNT(*) FROM problems`))
	return n, err
}

// SolutionOf returns the solution attached to a problem. ErrNotFound means
// the problem has none, which is not a failure for callers.
func (s *ProblemStore) SolutionOf(ctx context.Context, problemID string) (*Solution, error) {
	var sol Solution
	err := s.db.GetContext(ctx, &sol, s.ql.rebind(s.db, `SELECT * FROM solutions WHERE problem_id = ?`), problemID)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sol, nil
}

// SetSolution attaches content to a problem, replacing any previous solution.
func (s *ProblemStore) SetSolution(ctx context.Context, problemID, content string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, s.ql.rebind(tx, `DELETE FROM solutions WHERE problem_id = ?`), problemID); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, s.ql.rebind(tx, `
		INSERT INTO solutions (problem_id, content, updated_at) VALUES (?, ?, ?)
	`), problemID, content, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("insert solution: %w", err)
	}
	return tx.Commit()
}
