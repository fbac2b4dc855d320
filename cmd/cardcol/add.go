package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cardcol/cardcol/internal/database"
	"github.com/cardcol/cardcol/internal/services"
)

func newAddCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add reference data to the database",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "rarity <name>",
		Short: "Register a rarity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dbCtx, err := a.openDatabase()
			if err != nil {
				return err
			}
			defer func() {
				_ = database.CloseDatabase(dbCtx)
			}()

			id, err := services.NewRarityService(dbCtx).Add(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Inserted rarity '%s' (id %d)\n", args[0], id)
			return nil
		},
	})

	return cmd
}
