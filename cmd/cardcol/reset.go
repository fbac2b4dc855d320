package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cardcol/cardcol/internal/database"
	"github.com/cardcol/cardcol/internal/services"
)

func newResetCmd(a *app) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear owned counts, or with --all the whole catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dbCtx, err := a.openDatabase()
			if err != nil {
				return err
			}
			defer func() {
				_ = database.CloseDatabase(dbCtx)
			}()

			if all {
				if err := database.ClearDatabase(dbCtx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Removed all series and cards")
				return nil
			}

			n, err := services.NewCardService(dbCtx).ResetCollection(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reset owned counts of %d cards\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Remove every series and card (rarities are kept)")

	return cmd
}
