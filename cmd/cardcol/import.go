package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cardcol/cardcol/internal/application"
	"github.com/cardcol/cardcol/internal/database"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <export>...",
		Short: "Seed series exports (json or yaml) into the database",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dbCtx, err := a.openDatabase()
			if err != nil {
				return err
			}
			defer func() {
				_ = database.CloseDatabase(dbCtx)
			}()

			for _, path := range args {
				exp, err := application.LoadExportFile(path)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				result, err := application.SeedSeries(cmd.Context(), dbCtx, exp, a.log)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Inserted %d cards into %s (%d skipped)\n",
					result.Inserted, exp.Name, len(result.Skipped))
			}
			return nil
		},
	}
}
