package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/cardcol/cardcol/internal/config"
	"github.com/cardcol/cardcol/internal/database"
	"github.com/cardcol/cardcol/internal/logger"
	"github.com/cardcol/cardcol/internal/remote"
	"github.com/cardcol/cardcol/internal/viewmodel"
)

// app carries state shared by every subcommand.
type app struct {
	dbPath string
	log    logger.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: logger.Discard()}

	cmd := &cobra.Command{
		Use:   "cardcol",
		Short: "cardcol - track a trading card collection",
		Long: `cardcol keeps a catalog of card series and how many copies of each card you own.

Series are ingested from saved card list pages, served over an HTTP API and
browsed or adjusted from the command line.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
			a.log = logger.NewLogger()
		},
	}

	cmd.PersistentFlags().StringVar(&a.dbPath, "db", "", "Database file (default: $CARDCOL_DB or the data directory)")

	cmd.AddCommand(newInitCmd(a))
	cmd.AddCommand(newExtractCmd(a))
	cmd.AddCommand(newImportCmd(a))
	cmd.AddCommand(newAddCmd(a))
	cmd.AddCommand(newServeCmd(a))
	cmd.AddCommand(newListCmd(a))
	cmd.AddCommand(newSeriesCmd(a))
	cmd.AddCommand(newCollectCmd(a))
	cmd.AddCommand(newSellCmd(a))
	cmd.AddCommand(newFindCmd(a))
	cmd.AddCommand(newResetCmd(a))
	cmd.AddCommand(newExportsCmd(a))
	cmd.AddCommand(newMCPCmd(a))

	return cmd
}

// openDatabase opens the local database: --db, then CARDCOL_DB, then the default path.
func (a *app) openDatabase() (*database.Context, error) {
	path := a.dbPath
	if path == "" {
		path = os.Getenv("CARDCOL_DB")
	}
	return database.CreateDatabase(path)
}

// newCatalog builds a view model over the configured API after checking that
// the API speaks the same contract version.
func (a *app) newCatalog(ctx context.Context) (*viewmodel.Catalog, error) {
	cfg, err := config.LoadClient()
	if err != nil {
		return nil, err
	}
	client := remote.NewClientFromConfig(cfg)
	if err := client.Health(ctx); err != nil {
		return nil, fmt.Errorf("catalog API at %s is not usable: %w", cfg.APIURL, err)
	}
	return viewmodel.New(client, viewmodel.WithLogger(a.log)), nil
}

// writeOutput runs write against stdout, or against a freshly created file when
// path is set. A failed close of that file is reported.
func writeOutput(stdout io.Writer, path string, write func(io.Writer) error) (err error) {
	if path == "" {
		return write(stdout)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()
	return write(file)
}

func getTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}
