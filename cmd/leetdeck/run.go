package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/joestump/leetdeck/internal/logger"
)

func newRunCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Crawl solved problems, then render the deck",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAll(cmd, *configPath)
		},
	}
}

func runAll(cmd *cobra.Command, configPath string) error {
	a, err := openApp(configPath)
	if err != nil {
		return err
	}
	defer a.close()

	// Templates are checked before any network traffic.
	r, err := a.renderer()
	if err != nil {
		return err
	}
	o, err := a.orchestrator()
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := o.FetchAcceptedProblems(cmd.Context())
	if err != nil {
		return err
	}
	a.log.Info("crawl complete",
		logger.Duration("elapsed", time.Since(start)),
		logger.Int("listed", res.Listed),
		logger.Int("solved", res.Solved),
		logger.Int("skipped", res.Skipped),
		logger.Int("added", res.Added),
		logger.Int("failed", res.Failed),
	)
	a.recordStored(cmd.Context())

	_, err = r.RenderDeck(cmd.Context())
	return err
}
