package cmd

import (
	"crypto/rand"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"terraform-applyx/internal/config"
	"terraform-applyx/internal/creds"
	"terraform-applyx/internal/docker"
	"terraform-applyx/internal/git"
	"terraform-applyx/internal/plan"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize terraform-applyx configuration",
	Long: `Initialize terraform-applyx configuration and settings.

Creates a .terraform-applyx.yaml configuration file in the current directory
with default values and a randomly generated history database password. Also
creates the history-data directory for Docker volume mounting.

The configuration file will be created with the following default values:
  - working_dir: .
  - log_level: info
  - history.uri: bolt://localhost:7687
  - history.user: neo4j
  - history.password: (randomly generated)
  - history.docker_image: neo4j:community

Example:
  terraform-applyx init`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := config.ConfigFileName + "." + config.ConfigFileType

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("configuration file already exists at %s", configPath)
	}

	cfg := config.DefaultConfig()

	password, err := generateRandomPassword(16)
	if err != nil {
		return fmt.Errorf("failed to generate random password: %w", err)
	}
	cfg.History.Password = password

	if err := config.Save(cfg, configPath); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	if err := os.MkdirAll(docker.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s directory: %w", docker.DataDir, err)
	}

	fmt.Printf("✓ Created configuration file: %s\n\n", configPath)
	fmt.Println("Default configuration:")
	fmt.Printf("  working_dir: %s\n", cfg.WorkingDir)
	fmt.Printf("  history.uri: %s\n", cfg.History.URI)
	fmt.Printf("  history.user: %s\n", cfg.History.User)
	fmt.Printf("  history.password: %s\n", cfg.History.Password)
	fmt.Printf("  history.docker_image: %s\n\n", cfg.History.DockerImage)
	fmt.Printf("✓ Created data directory: %s\n\n", docker.DataDir)

	entries := []string{
		configPath,
		docker.DataDir + "/",
		plan.DefaultPlanFile,
		creds.FileName,
		".terraform/",
	}
	if err := git.UpdateGitignore(entries); err != nil {
		// A failed gitignore update should not fail the command
		fmt.Fprintf(os.Stderr, "Warning: failed to update .gitignore: %v\n", err)
	}

	return nil
}

// generateRandomPassword generates a random alphanumeric password of the
// specified length. Alphanumerics only, to keep the Neo4j auth string simple.
func generateRandomPassword(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	for i := range bytes {
		bytes[i] = charset[int(bytes[i])%len(charset)]
	}
	return string(bytes), nil
}

func init() {
	rootCmd.AddCommand(initCmd)
}
