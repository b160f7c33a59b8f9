package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "terraform-applyx [command]",
	Short: "Run Terraform applies with CI-friendly change summaries",
	Long: `terraform-applyx is a CLI tool that wraps 'terraform apply' for use in
automation: it prepares credentials and secrets for the child process, runs the
apply, and reformats the plan JSON into collapsible log groups plus
machine-readable outputs.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
