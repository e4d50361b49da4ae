package cli

import (
	"github.com/spf13/cobra"

	"github.com/vietanhdev/kirapilot-dnd/internal/web"
)

// newServeCmd creates the serve command for the debug JSON API.
func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the debug JSON API",
		Long: `Run the debug JSON API.

The serve command starts an HTTP server exposing placeholder computation
over JSON. Each request carries its own board fixture, so the server is
stateless:

  POST /v1/placeholder  compute the placeholder position for a pointer
  POST /v1/collision    return the raw collision match list
  POST /v1/validate     check a position against a (possibly mutated) board
  GET  /healthz         liveness probe

The server shuts down gracefully on SIGINT/SIGTERM.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := web.NewServer(loggerFromContext(cmd.Context()))
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8420", "listen address")

	return cmd
}
