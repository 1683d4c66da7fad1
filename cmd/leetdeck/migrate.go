package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// openApp migrates before returning.
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.close()

			fmt.Fprintln(cmd.OutOrStdout(), "migrations complete")
			return nil
		},
	}
}
