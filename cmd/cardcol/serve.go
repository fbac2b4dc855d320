package main

import (
	"github.com/spf13/cobra"

	"github.com/cardcol/cardcol/internal/api"
	"github.com/cardcol/cardcol/internal/config"
	"github.com/cardcol/cardcol/internal/database"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		host string
		port string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadServer()
			if err != nil {
				return err
			}
			if a.dbPath != "" {
				cfg.DBPath = a.dbPath
			}
			if host != "" {
				cfg.Host = host
			}
			if port != "" {
				cfg.Port = port
			}

			dbCtx, err := database.CreateDatabase(cfg.DBPath)
			if err != nil {
				return err
			}
			defer func() {
				_ = database.CloseDatabase(dbCtx)
			}()

			app := api.NewApp(api.NewHandler(dbCtx, a.log), cfg)
			return api.Serve(cmd.Context(), app, cfg.Addr(), a.log.WithComponent("server"))
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Listen host (default: $CARDCOL_HOST or localhost)")
	cmd.Flags().StringVar(&port, "port", "", "Listen port (default: $CARDCOL_PORT or 3000)")

	return cmd
}
