package cmd

import (
	"github.com/spf13/cobra"

	"terraform-applyx/internal/docker"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop and remove the history database container",
	Long: `Stop and remove the Neo4j history database container started with
'terraform-applyx start'. The data in the history-data directory is preserved.

Example:
  terraform-applyx stop`,
	RunE: runStop,
}

func runStop(cmd *cobra.Command, args []string) error {
	return docker.StopHistoryDB(cmd.Context())
}

func init() {
	rootCmd.AddCommand(stopCmd)
}
