package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "leetdeck",
		Short: "Turn solved LeetCode problems into an Anki deck",
		Long: "leetdeck mirrors the problems you have solved on LeetCode into a local database\n" +
			"and renders them as an Anki deck. Without a subcommand it crawls, then renders.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAll(cmd, configPath)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default: leetdeck.yaml in . or $HOME/.config/leetdeck)")

	rootCmd.AddCommand(newRunCmd(&configPath))
	rootCmd.AddCommand(newCrawlCmd(&configPath))
	rootCmd.AddCommand(newFetchCmd(&configPath))
	rootCmd.AddCommand(newRenderCmd(&configPath))
	rootCmd.AddCommand(newMigrateCmd(&configPath))
	rootCmd.AddCommand(newSolutionCmd(&configPath))
	rootCmd.AddCommand(newVersionCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "leetdeck:", err)
		os.Exit(1)
	}
}
