package main

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/joestump/leetdeck/internal/config"
	"github.com/joestump/leetdeck/internal/crawl"
	"github.com/joestump/leetdeck/internal/db"
	"github.com/joestump/leetdeck/internal/leetcode"
	"github.com/joestump/leetdeck/internal/logger"
	"github.com/joestump/leetdeck/internal/metrics"
	"github.com/joestump/leetdeck/internal/render"
	"github.com/joestump/leetdeck/internal/store"
)

// app holds what every command shares once the config is loaded and the
// database is migrated.
type app struct {
	cfg      *config.Config
	log      logger.Logger
	db       *sqlx.DB
	problems store.ProblemStoreIface
}

func openApp(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if cfg.DB.Debug {
		level = "debug"
	}
	log, err := logger.New(logger.Config{Level: level, Format: cfg.Log.Format})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	dsn := cfg.DB.DSN
	if dsn == "" {
		dsn, err = db.SQLiteDSN(cfg.DB.Path)
		if err != nil {
			return nil, err
		}
	}

	database, err := db.New(cfg.DB.Driver, dsn)
	if err != nil {
		return nil, err
	}

	db.SetLogger(log, cfg.DB.Debug)
	if err := db.Migrate(database, cfg.DB.Driver); err != nil {
		_ = database.Close()
		return nil, err
	}

	// Statement logging only when storage debugging is on.
	var storeLog logger.Logger
	if cfg.DB.Debug {
		storeLog = log.With(logger.String("component", "store"))
	}
	tags := store.NewTagStore(database, storeLog)

	return &app{
		cfg:      cfg,
		log:      log,
		db:       database,
		problems: store.NewProblemStore(database, tags, storeLog),
	}, nil
}

// close releases the database and, when configured, writes the metrics
// textfile.
func (a *app) close() {
	if a.cfg.Metrics.File != "" {
		if err := metrics.WriteTextfile(a.cfg.Metrics.File); err != nil {
			a.log.Warn("write metrics", logger.String("path", a.cfg.Metrics.File), logger.Error(err))
		}
	}
	if err := a.db.Close(); err != nil {
		a.log.Warn("close database", logger.Error(err))
	}
	_ = a.log.Sync()
}

func (a *app) orchestrator() (*crawl.Orchestrator, error) {
	if err := a.cfg.RequireLeetCode(); err != nil {
		return nil, err
	}
	client := leetcode.New(leetcode.Options{
		BaseURL:    a.cfg.LeetCode.BaseURL,
		Session:    a.cfg.LeetCode.Session,
		CSRFToken:  a.cfg.LeetCode.CSRFToken,
		Rate:       a.cfg.LeetCode.Rate,
		MaxRetries: a.cfg.LeetCode.MaxRetries,
		Timeout:    a.cfg.LeetCode.Timeout,
		Log:        a.log.With(logger.String("component", "leetcode")),
	})
	events := crawl.LogEvents{Log: a.log.With(logger.String("component", "crawl"))}
	return crawl.New(a.problems, client, events), nil
}

func (a *app) renderer() (*render.Renderer, error) {
	if err := a.cfg.RequireAnki(); err != nil {
		return nil, err
	}
	tmpl, err := render.LoadTemplates(a.cfg.Anki.Front, a.cfg.Anki.Back, a.cfg.Anki.CSS)
	if err != nil {
		return nil, err
	}
	return render.New(a.problems, tmpl, render.Options{
		DeckName: a.cfg.Anki.DeckName,
		Output:   a.cfg.Anki.Output,
		Log:      a.log.With(logger.String("component", "render")),
	}), nil
}

// recordStored updates the stored-problems gauge.
func (a *app) recordStored(ctx context.Context) {
	n, err := a.problems.Count(ctx)
	if err != nil {
		a.log.Warn("count problems", logger.Error(err))
		return
	}
	metrics.ProblemsStored.Set(float64(n))
}
