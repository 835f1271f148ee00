package commands

import (
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/garunski/codequest/pkg/codequest"
)

func newServeCmd(opts *options) *cobra.Command {
	var (
		port    string
		noWatch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the topic store over HTTP",
		Long: `Loads every topic manifest and serves the topics, images and event
log over HTTP until interrupted. Manifests edited on disk are reloaded
unless --no-watch is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrinter(cmd)
			cfg, err := opts.config(cmd)
			if err != nil {
				return p.Error("Invalid configuration", err.Error(), nil)
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if noWatch {
				cfg.WatchManifests = false
			}

			logger, err := codequest.NewLogger()
			if err != nil {
				logger = logr.Discard()
			}

			p.Step("Serving %d topics from %s on :%s\n", cfg.TopicCount, cfg.ManifestDir, cfg.Port)
			if err := codequest.RunWithLogger(cmd.Context(), cfg, logger); err != nil {
				return p.Error("Server stopped with an error", err.Error(), nil)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "HTTP port (defaults to $PORT or 8081)")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload manifests edited on disk")
	return cmd
}
