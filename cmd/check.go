package cmd

import (
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"

	"terraform-applyx/internal/config"
	"terraform-applyx/internal/history"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate terraform-applyx configuration and connections",
	Long:  `Validate terraform-applyx configuration and verify connections.`,
	RunE:  runCheck,
}

var checkDatabaseCmd = &cobra.Command{
	Use:   "database",
	Short: "Check history database connectivity",
	Long: `Verify that terraform-applyx can connect to the history database using
the credentials from the configuration file (.terraform-applyx.yaml).

This command will:
  1. Load the configuration from .terraform-applyx.yaml
  2. Attempt to connect to the history database
  3. Verify connectivity
  4. Report the connection status

Example:
  terraform-applyx check database`,
	RunE: runCheckDatabase,
}

// runCheck validates the local prerequisites for an apply: the terraform
// binary and the configured working directory.
func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	path, err := exec.LookPath("terraform")
	if err != nil {
		return fmt.Errorf("terraform binary not found on PATH: %w", err)
	}
	fmt.Printf("✓ terraform binary: %s\n", path)

	fmt.Printf("✓ working directory: %s\n", cfg.WorkingDir)
	fmt.Println()
	fmt.Println("Run 'terraform-applyx check database' to verify the history database.")
	return nil
}

func runCheckDatabase(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if !config.Exists() {
		fmt.Println("⚠ Warning: No configuration file found.")
		fmt.Println("  Run 'terraform-applyx init' to create one.")
		fmt.Println("  Using default values...")
		fmt.Println()
	}

	// Display connection info (without password)
	fmt.Println("History Database Connection Settings:")
	fmt.Printf("  URI:  %s\n", cfg.History.URI)
	fmt.Printf("  User: %s\n", cfg.History.User)
	fmt.Println()

	if cfg.History.Password == "" {
		return fmt.Errorf("history database password is not set in configuration file")
	}

	ctx := cmd.Context()

	client, err := history.NewClient(cfg.History.URI, cfg.History.User, cfg.History.Password)
	if err != nil {
		return fmt.Errorf("failed to create history client: %w", err)
	}
	defer client.Close(ctx)

	if err := client.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("failed to connect to history database: %w", err)
	}

	fmt.Println("✓ Successfully connected to the history database!")
	return nil
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.AddCommand(checkDatabaseCmd)
}
