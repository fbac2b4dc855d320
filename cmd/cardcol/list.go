package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/cardcol/cardcol/internal/listing"
	"github.com/cardcol/cardcol/internal/viewmodel"
)

func newListCmd(a *app) *cobra.Command {
	var (
		seriesID  int64
		search    string
		owned     string
		rarities  []string
		sortKey   string
		desc      bool
		format    string
		template  string
		output    string
		reloadAll bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cards from the catalog API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := listing.ParseFormat(format)
			if err != nil {
				return err
			}
			ownership, err := viewmodel.ParseOwnership(owned)
			if err != nil {
				return err
			}
			key, err := viewmodel.ParseSortKey(sortKey)
			if err != nil {
				return err
			}

			vm, err := a.newCatalog(cmd.Context())
			if err != nil {
				return err
			}
			if reloadAll || search == "" {
				err = vm.Refresh(cmd.Context())
			} else {
				err = vm.RefreshSearch(cmd.Context(), search)
			}
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("series") {
				vm.SelectSeries(&seriesID)
			}
			vm.SetSearch(search)
			vm.SetOwnership(ownership)
			vm.SetRarities(rarities)
			if key != viewmodel.SortNone {
				state := viewmodel.SortState{Key: key}
				if desc {
					state.Direction = viewmodel.Descending
				}
				vm.SetSort(state)
			}

			cards := vm.Visible()
			names := listing.SeriesNames(vm.Series())
			return writeOutput(cmd.OutOrStdout(), output, func(w io.Writer) error {
				switch f {
				case listing.FormatJSON:
					return listing.WriteJSON(w, cards, vm.Summary())
				case listing.FormatTemplate:
					return listing.WriteTemplate(w, cards, names, template)
				case listing.FormatParquet:
					return listing.WriteParquet(w, cards, names)
				default:
					listing.WriteTable(w, cards, names, vm.Summary(), getTerminalWidth())
					return nil
				}
			})
		},
	}

	cmd.Flags().Int64Var(&seriesID, "series", 0, "Only cards of this series id")
	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive substring of the card name")
	cmd.Flags().StringVar(&owned, "owned", "all", "Ownership filter: all, collected or uncollected")
	cmd.Flags().StringSliceVar(&rarities, "rarity", nil, "Only cards with these rarities (repeatable)")
	cmd.Flags().StringVar(&sortKey, "sort", "", "Sort key: name, number, in_collection, rarity, card_type, collection_number, series")
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort descending")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table, json, template or parquet")
	cmd.Flags().StringVar(&template, "template", listing.DefaultTemplate, "Line template for --format template")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")
	cmd.Flags().BoolVar(&reloadAll, "all", false, "Load the whole catalog even when searching, so totals cover every card")

	return cmd
}
