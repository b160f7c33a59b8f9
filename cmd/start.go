package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"terraform-applyx/internal/config"
	"terraform-applyx/internal/docker"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the history database in Docker",
	Long: `Start the Neo4j history database container using Docker with the
configuration from the .terraform-applyx.yaml file. The container mounts the
history-data directory as a volume for data persistence.

This command will:
  - Pull the Neo4j image if not already downloaded
  - Start the container in the background
  - Use the credentials from the configuration file
  - Mount the history-data directory as a volume

Example:
  terraform-applyx start`,
	RunE: runStart,
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	return docker.StartHistoryDB(cmd.Context(), &cfg.History)
}

func init() {
	rootCmd.AddCommand(startCmd)
}
