package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCrawlCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "crawl",
		Short: "Store every solved problem that is not stored yet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.close()

			o, err := a.orchestrator()
			if err != nil {
				return err
			}
			res, err := o.FetchAcceptedProblems(cmd.Context())
			if err != nil {
				return err
			}
			a.recordStored(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "%d solved, %d added, %d already stored, %d failed\n",
				res.Solved, res.Added, res.Skipped, res.Failed)
			return nil
		},
	}
}

func newFetchCmd(configPath *string) *cobra.Command {
	var accepted bool

	cmd := &cobra.Command{
		Use:   "fetch <slug>...",
		Short: "Store specific problems by title slug",
		Long:  "Fetch stores the named problems whether or not they are solved. Problems already stored are rejected.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.close()

			o, err := a.orchestrator()
			if err != nil {
				return err
			}
			for _, slug := range args {
				if err := o.FetchDetail(cmd.Context(), slug, accepted); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "stored %s\n", slug)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&accepted, "accepted", false, "mark the problems as solved")
	return cmd
}
