package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateProblemTables, downCreateProblemTables)
}

func upCreateProblemTables(ctx context.Context, tx *sql.Tx) error {
	err := runAll(func(stmt string) error {
		_, err := tx.ExecContext(ctx, stmt)
		return err
	}, problemTablesUpStmts())
	if err != nil {
		return fmt.Errorf("create problem tables: %w", err)
	}
	return nil
}

func downCreateProblemTables(ctx context.Context, tx *sql.Tx) error {
	return runAll(func(stmt string) error {
		_, err := tx.ExecContext(ctx, stmt)
		return err
	}, []string{
		`DROP TABLE IF EXISTS problem_tags`,
		`DROP TABLE IF EXISTS tags`,
		`DROP TABLE IF EXISTS problems`,
	})
}

func problemTablesUpStmts() []string {
	switch dialect {
	case "postgres":
		return []string{
			`CREATE TABLE IF NOT EXISTS problems (
    id          TEXT PRIMARY KEY,
    display_id  BIGINT NOT NULL UNIQUE,
    level       TEXT NOT NULL,
    title       TEXT NOT NULL,
    slug        TEXT NOT NULL UNIQUE,
    description TEXT NOT NULL,
    accepted    BOOLEAN NOT NULL DEFAULT FALSE,
    created_at  TIMESTAMPTZ NOT NULL
)`,
			`CREATE TABLE IF NOT EXISTS tags (
    slug       TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
)`,
			`CREATE TABLE IF NOT EXISTS problem_tags (
    problem_id TEXT NOT NULL REFERENCES problems(id) ON DELETE CASCADE,
    tag_slug   TEXT NOT NULL REFERENCES tags(slug),
    PRIMARY KEY (problem_id, tag_slug)
)`,
			`CREATE INDEX IF NOT EXISTS idx_problem_tags_tag ON problem_tags (tag_slug)`,
		}

	case "mysql":
		return []string{
			`CREATE TABLE IF NOT EXISTS problems (
    id          VARCHAR(36) PRIMARY KEY,
    display_id  BIGINT NOT NULL UNIQUE,
    level       VARCHAR(32) NOT NULL,
    title       VARCHAR(512) NOT NULL,
    slug        VARCHAR(255) NOT NULL UNIQUE,
    description LONGTEXT NOT NULL,
    accepted    BOOLEAN NOT NULL DEFAULT FALSE,
    created_at  TIMESTAMP(6) NOT NULL
)`,
			`CREATE TABLE IF NOT EXISTS tags (
    slug       VARCHAR(255) PRIMARY KEY,
    name       VARCHAR(255) NOT NULL,
    created_at TIMESTAMP(6) NOT NULL
)`,
			// MySQL has no CREATE INDEX IF NOT EXISTS; declare the index inline.
			`CREATE TABLE IF NOT EXISTS problem_tags (
    problem_id VARCHAR(36) NOT NULL,
    tag_slug   VARCHAR(255) NOT NULL,
    PRIMARY KEY (problem_id, tag_slug),
    INDEX idx_problem_tags_tag (tag_slug),
    FOREIGN KEY (problem_id) REFERENCES problems(id) ON DELETE CASCADE,
    FOREIGN KEY (tag_slug) REFERENCES tags(slug)
)`,
		}

	default: // sqlite3
		return []string{
			`CREATE TABLE IF NOT EXISTS problems (
    id          TEXT PRIMARY KEY,
    display_id  INTEGER NOT NULL UNIQUE,
    level       TEXT NOT NULL,
    title       TEXT NOT NULL,
    slug        TEXT NOT NULL UNIQUE,
    description TEXT NOT NULL,
    accepted    BOOLEAN NOT NULL DEFAULT 0,
    created_at  DATETIME NOT NULL
)`,
			`CREATE TABLE IF NOT EXISTS tags (
    slug       TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    created_at DATETIME NOT NULL
)`,
			`CREATE TABLE IF NOT EXISTS problem_tags (
    problem_id TEXT NOT NULL REFERENCES problems(id) ON DELETE CASCADE,
    tag_slug   TEXT NOT NULL REFERENCES tags(slug),
    PRIMARY KEY (problem_id, tag_slug)
)`,
			`CREATE INDEX IF NOT EXISTS idx_problem_tags_tag ON problem_tags (tag_slug)`,
		}
	}
}
