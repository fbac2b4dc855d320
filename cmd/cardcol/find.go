package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cardcol/cardcol/internal/extract"
	"github.com/cardcol/cardcol/internal/listing"
)

func newFindCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find",
		Short: "Find series pages or cards",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "series <name>...",
		Short: "Print the card list page URL for a series",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), extract.SeriesPageURL(strings.Join(args, " ")))
			return nil
		},
	})

	var template string
	cards := &cobra.Command{
		Use:   "cards <name>",
		Short: "Search cards by name through the catalog API",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vm, err := a.newCatalog(cmd.Context())
			if err != nil {
				return err
			}
			if err := vm.RefreshSearch(cmd.Context(), args[0]); err != nil {
				return err
			}
			return listing.WriteTemplate(cmd.OutOrStdout(), vm.Visible(), listing.SeriesNames(vm.Series()), template)
		},
	}
	cards.Flags().StringVar(&template, "template", "{number} {name} ({rarity}) x{in_collection}", "Line template")
	cmd.AddCommand(cards)

	return cmd
}
