package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cardcol/cardcol/internal/config"
	"github.com/cardcol/cardcol/internal/remote"
)

func newSeriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "series",
		Short: "List series from the catalog API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadClient()
			if err != nil {
				return err
			}

			series, err := remote.NewClientFromConfig(cfg).ListSeries(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(series) == 0 {
				fmt.Fprintln(out, "No series in current database")
				return nil
			}
			for i, s := range series {
				fmt.Fprintf(out, "%d. %s (%s) - %d cards [id %d]\n", i+1, s.Name, s.ReleaseDate, s.CardCount, s.ID)
			}
			return nil
		},
	}
}
