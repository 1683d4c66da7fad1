package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRenderCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Write the Anki deck from stored problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.close()

			r, err := a.renderer()
			if err != nil {
				return err
			}
			sum, err := r.RenderDeck(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d notes to %s (deck %d)\n", sum.Notes, sum.Output, sum.DeckID)
			return nil
		},
	}
}
