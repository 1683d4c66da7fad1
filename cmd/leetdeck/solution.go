package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joestump/leetdeck/internal/logger"
	"github.com/joestump/leetdeck/internal/store"
)

func newSolutionCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solution",
		Short: "Manage the solution notes shown on the back of cards",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "import <dir>",
		Short: "Attach <slug>.md files in dir to the matching stored problems",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.close()

			files, err := filepath.Glob(filepath.Join(args[0], "*.md"))
			if err != nil {
				return err
			}
			sort.Strings(files)

			var imported, unknown int
			for _, path := range files {
				slug := strings.TrimSuffix(filepath.Base(path), ".md")
				p, err := a.problems.GetBySlug(cmd.Context(), slug)
				if errors.Is(err, store.ErrNotFound) {
					unknown++
					a.log.Warn("no stored problem for solution", logger.String("file", path))
					continue
				}
				if err != nil {
					return err
				}

				content, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				if err := a.problems.SetSolution(cmd.Context(), p.ID, string(content)); err != nil {
					return fmt.Errorf("store solution for %s: %w", slug, err)
				}
				imported++
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d solutions, %d without a stored problem\n", imported, unknown)
			return nil
		},
	})
	return cmd
}
