package db

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"

	"github.com/joestump/leetdeck/internal/db/migrations"
	"github.com/joestump/leetdeck/internal/logger"
)

//go:embed migrations
var Migrations embed.FS

// Migrate brings the schema up to date. Every migration is idempotent, so it
// is safe to call on each start.
func Migrate(db *sqlx.DB, driver string) error {
	gooseDriver, err := gooseDialect(driver)
	if err != nil {
		return err
	}

	if err := goose.SetDialect(gooseDriver); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	migrations.SetDialect(gooseDriver)

	sub, err := fs.Sub(Migrations, "migrations")
	if err != nil {
		return fmt.Errorf("sub migrations fs: %w", err)
	}

	goose.SetBaseFS(sub)
	defer goose.SetBaseFS(nil)
	if err := goose.Up(db.DB, "."); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// SetLogger routes goose's migration output to l. Per-statement output is
// only emitted when verbose is set.
func SetLogger(l logger.Logger, verbose bool) {
	goose.SetLogger(gooseLogger{l: l})
	goose.SetVerbose(verbose)
}

type gooseLogger struct {
	l logger.Logger
}

func (g gooseLogger) Printf(format string, v ...interface{}) {
	g.l.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (g gooseLogger) Fatalf(format string, v ...interface{}) {
	g.l.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
	_ = g.l.Sync()
	os.Exit(1)
}

func gooseDialect(driver string) (string, error) {
	if _, ok := sqlDrivers[driver]; !ok {
		return "", fmt.Errorf("unknown driver for goose dialect: %q", driver)
	}
	// goose and the config share dialect names.
	return driver, nil
}
