package commands

import (
	"github.com/spf13/cobra"

	"github.com/opsmind/opsmind/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the assistant over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ag, err := buildAgent(cfg)
		if err != nil {
			return err
		}

		addr := serveAddr
		if addr == "" {
			addr = cfg.ListenAddr
		}
		return server.New(ag, logger).ListenAndServe(addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
}
