// File: cmd/ossgate/serve_cmd.go
package main

import (
	"ossgate/internal/flags"
	"ossgate/internal/server"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var addr string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP gateway",
		Long: `Serves the storage operations over HTTP. Requests are JSON {config, params}
and every response is a result envelope. Metrics are exposed at /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFromContext(cmd.Context())
			if err != nil {
				return err
			}

			if addr == "" {
				addr = app.Config.Server.Addr
			}

			srv := server.New(app.StorageService, app.Metrics, app.Logger)
			return srv.Run(cmd.Context(), addr)
		},
	}
	serveCmd.Flags().StringVar(&addr, flags.Addr, "", "Listen address (defaults to server.addr from the config)")
	return serveCmd
}
