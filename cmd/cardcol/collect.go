package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cardcol/cardcol/internal/catalog"
	"github.com/cardcol/cardcol/internal/database"
	"github.com/cardcol/cardcol/internal/services"
)

func newCollectCmd(a *app) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "collect <card-number>...",
		Short: "Add one copy of each card to the collection",
		Long: `Add one copy of each card through the catalog API.

With --count the owned count is set directly in the local database instead.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("count") {
				return setCounts(cmd, a, args, count)
			}
			return adjustCards(cmd, a, args, nil)
		},
	}

	cmd.Flags().IntVar(&count, "count", 0, "Set the owned count of every given card to this value")

	return cmd
}

func newSellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sell <card-number>...",
		Short: "Remove one copy of each card from the collection",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			minusOne := -1
			return adjustCards(cmd, a, args, &minusOne)
		},
	}
}

func adjustCards(cmd *cobra.Command, a *app, numbers []string, delta *int) error {
	vm, err := a.newCatalog(cmd.Context())
	if err != nil {
		return err
	}
	if err := vm.Refresh(cmd.Context()); err != nil {
		return err
	}

	for _, raw := range numbers {
		number, _ := catalog.CanonicalNumber(raw)
		if err := vm.Adjust(cmd.Context(), number, delta); err != nil {
			return err
		}
		card, _ := vm.Card(number)
		fmt.Fprintf(cmd.OutOrStdout(), "Card %s now has %d copies in collection.\n", number, card.InCollection)
	}
	return nil
}

func setCounts(cmd *cobra.Command, a *app, numbers []string, count int) error {
	dbCtx, err := a.openDatabase()
	if err != nil {
		return err
	}
	defer func() {
		_ = database.CloseDatabase(dbCtx)
	}()

	svc := services.NewCardService(dbCtx)
	for _, raw := range numbers {
		number, _ := catalog.CanonicalNumber(raw)
		if err := svc.SetCount(cmd.Context(), number, count); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Card %s now has %d copies in collection.\n", number, count)
	}
	return nil
}
