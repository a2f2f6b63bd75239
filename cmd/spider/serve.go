package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/yeoblyv/spider"
	"github.com/yeoblyv/spider/pkg/httpserver"
)

func newServeCmd(flags *globalFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"s"},
		Short:   "Serve the public directory over HTTP",
		Long: `Serve the public directory over HTTP until interrupted.

/healthz answers liveness probes and /readyz checks the public directory and,
when DB_DSN is set, the database connection.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.HTTP.Addr = addr
			}

			ctx := cmd.Context()
			app, err := spider.New(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := app.Close(); err != nil {
					app.Logger().ErrorContext(ctx, "close failed", slog.Any("error", err))
				}
			}()

			srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(app.Logger()))
			return srv.Run(ctx, app.Handler())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides HTTP_ADDR)")
	return cmd
}
