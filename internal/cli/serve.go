package cli

import (
	"net"

	"github.com/spf13/cobra"

	"github.com/precice/config-format/internal/server"
	"github.com/precice/config-format/pkg/buildinfo"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the formatter over HTTP",
		Long: `Serve the formatter over HTTP.

Routes:
  POST /format   format the request body and return the result
  POST /check    report whether the request body is formatted
  GET  /healthz  liveness check`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cfg)
			if err != nil {
				return err
			}
			defer runner.Close()

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return err
			}

			cacheKind := "file"
			switch {
			case !cfg.Cache.Enabled:
				cacheKind = "disabled"
			case cfg.Cache.RedisURL != "":
				cacheKind = "redis"
			}
			c.printKeyValue("version", buildinfo.Short())
			c.printKeyValue("address", ln.Addr().String())
			c.printKeyValue("cache", cacheKind)

			h := server.New(runner, pipelineOptions(cfg), c.Logger)
			return server.Serve(cmd.Context(), ln, h, c.Logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}
