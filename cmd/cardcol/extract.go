package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cardcol/cardcol/internal/application"
	"github.com/cardcol/cardcol/internal/extract"
)

func newExtractCmd(a *app) *cobra.Command {
	var (
		output  string
		format  string
		archive bool
	)

	cmd := &cobra.Command{
		Use:   "extract <page.html>",
		Short: "Extract a series export from a saved card list page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := extract.FormatJSON
			switch {
			case format != "":
				parsed, err := extract.ParseFormat(format)
				if err != nil {
					return err
				}
				f = parsed
			case output != "":
				f = extract.FormatFromPath(output)
			}

			page, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer page.Close()

			exp, err := application.ExtractPage(page)
			if err != nil {
				return err
			}

			if archive {
				path, err := application.ArchiveExport(exp, f)
				if err != nil {
					return err
				}
				a.log.Infof("archived export at %s", path)
			}

			err = writeOutput(cmd.OutOrStdout(), output, func(w io.Writer) error {
				return extract.EncodeExport(w, exp, f)
			})
			if err != nil {
				return err
			}

			if output != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Extracted %d cards of %s to %s\n", exp.NCards, exp.Name, output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the export to this file instead of stdout")
	cmd.Flags().StringVar(&format, "format", "", "Export format: json or yaml (default: from --output extension, else json)")
	cmd.Flags().BoolVar(&archive, "archive", false, "Also keep a copy in the exports directory")

	return cmd
}
