package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "failover",
		Short: "Raft leader failover simulator for PD and TiKV",
		Long: `failover plays scripted leader failures on a 3-node PD cluster and a
3-node TiKV cluster, either in the terminal or behind an HTTP API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(serveCmd())
	cmd.AddCommand(scenarioCmd())
	cmd.AddCommand(configCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}
