package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cardcol/cardcol/internal/filesystem"
)

func newExportsCmd(a *app) *cobra.Command {
	var prune bool

	cmd := &cobra.Command{
		Use:   "exports <series name>",
		Short: "List archived exports of a series and check their hashes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			series := strings.Join(args, " ")
			out := cmd.OutOrStdout()

			if prune {
				if err := filesystem.DeleteSeriesExports(series); err != nil {
					return err
				}
				fmt.Fprintf(out, "Removed archived exports of %s\n", series)
				return nil
			}

			paths, err := filesystem.ListSeriesExports(series)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				fmt.Fprintf(out, "No archived exports for %s\n", series)
				return nil
			}
			for _, path := range paths {
				status := "ok"
				if ok, err := filesystem.VerifyExport(path); err != nil {
					status = err.Error()
				} else if !ok {
					status = "modified"
				}
				fmt.Fprintf(out, "%s\t%s\n", path, status)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&prune, "prune", false, "Delete the archived exports instead of listing them")

	return cmd
}
