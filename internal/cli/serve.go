package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/sillydeps/internal/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr        string
		catalogPath string
		noCache     bool
		noHistory   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve audits over HTTP. Clients POST a manifest and, optionally, the
"npm ls --json --all" output to /v1/audit; the server never runs npm itself.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.Config.Addr
			}
			runner, err := c.newRunner(ctx, runnerOptions{
				catalogPath: catalogPath,
				noCache:     noCache,
				noHistory:   noHistory,
			})
			if err != nil {
				return err
			}
			defer runner.Close()
			runner.Trees = nil

			logger := loggerFromContext(ctx)
			logger.Info("catalog loaded", "categories", len(runner.Catalog.Categories()), "packages", runner.Catalog.Len())
			return server.New(addr, runner, logger.With("component", "api")).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default $SILLYDEPS_ADDR or :8080)")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "catalog file (.json or .toml) replacing the bundled one")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "do not cache results")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "do not record audits in history")
	return cmd
}
