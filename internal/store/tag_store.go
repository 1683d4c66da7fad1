package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/joestump/leetdeck/internal/logger"
)

var tagSlugStripRe = regexp.MustCompile(`[^a-z0-9-]`)

// Tag represents a row in the tags table.
type Tag struct {
	Slug      string    `db:"slug"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

// TagStore reads and writes problem tags.
type TagStore struct {
	db *sqlx.DB
	ql queryLog
}

// NewTagStore returns a TagStore. A nil log disables statement logging.
func NewTagStore(db *sqlx.DB, log logger.Logger) *TagStore {
	return &TagStore{db: db, ql: newQueryLog(log)}
}

// DeriveTagSlug derives a URL-safe slug from a tag name:
// lowercase, replace spaces/underscores with hyphens, strip non-[a-z0-9-].
func DeriveTagSlug(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "_", "-")
	s = tagSlugStripRe.ReplaceAllString(s, "")
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return strings.Trim(s, "-")
}

// normalizeTag fills a missing slug from the name and trims both.
func normalizeTag(t Tag) Tag {
	t.Name = strings.TrimSpace(t.Name)
	t.Slug = strings.TrimSpace(t.Slug)
	if t.Slug == "" {
		t.Slug = DeriveTagSlug(t.Name)
	}
	return t
}

// Upsert creates a tag if its slug is unknown, or returns the stored one.
// An existing tag keeps its original name.
func (s *TagStore) Upsert(ctx context.Context, t Tag) (*Tag, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	tag, err := s.upsertTx(ctx, tx, t)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return tag, nil
}

// upsertTx is the transactional variant used by ProblemStore.UpsertProblem.
func (s *TagStore) upsertTx(ctx context.Context, tx *sqlx.Tx, t Tag) (*Tag, error) {
	t = normalizeTag(t)
	if t.Slug == "" {
		return nil, errors.New("tag has neither slug nor name")
	}
	if t.Name == "" {
		t.Name = t.Slug
	}

	var existing Tag
	err := tx.GetContext(ctx, &existing, s.ql.rebind(tx, `SELECT * FROM tags WHERE slug = ?`), t.Slug)
	if err == nil {
		return &existing, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	t.CreatedAt = time.Now().UTC()
	_, err = tx.ExecContext(ctx, s.ql.rebind(tx, `
		INSERT INTO tags (slug, name, created_at) VALUES (?, ?, ?)
	`), t.Slug, t.Name, t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetBySlug returns the tag matching slug, or ErrNotFound.
func (s *TagStore) GetBySlug(ctx context.Context, slug string) (*Tag, error) {
	var t Tag
	err := s.db.GetContext(ctx, &t, s.ql.rebind(s.db, `SELECT * FROM tags WHERE slug = ?`), slug)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListAll returns all tags ordered by slug.
func (s *TagStore) ListAll(ctx context.Context) ([]*Tag, error) {
	var tags []*Tag
	err := s.db.SelectContext(ctx, &tags, s.ql.rebind(s.db, `SELECT * FROM tags ORDER BY slug ASC`))
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// ListByProblem returns the tags linked to a problem, ordered by slug.
func (s *TagStore) ListByProblem(ctx context.Context, problemID string) ([]*Tag, error) {
	var tags []*Tag
	err := s.db.SelectContext(ctx, &tags, s.ql.rebind(s.db, `
		SELECT t.* FROM tags t
		INNER JOIN problem_tags pt ON pt.tag_slug = t.slug
		WHERE pt.problem_id = ?
		ORDER BY t.slug ASC
	`), problemID)
	if err != nil {
		return nil, err
	}
	return tags, nil
}
