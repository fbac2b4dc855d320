package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cardcol/cardcol/internal/database"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create or migrate the card database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dbCtx, err := a.openDatabase()
			if err != nil {
				return err
			}
			defer func() {
				_ = database.CloseDatabase(dbCtx)
			}()

			version, dirty, err := database.SchemaVersion(dbCtx)
			if err != nil {
				return err
			}
			if dirty {
				return fmt.Errorf("schema version %d is dirty", version)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Initialized tables in database (schema version %d)\n", version)
			return nil
		},
	}
}
