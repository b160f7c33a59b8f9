package cmd

import (
	"github.com/spf13/cobra"

	"terraform-applyx/internal/ci"
	"terraform-applyx/internal/config"
	"terraform-applyx/internal/logging"
	"terraform-applyx/internal/runner"
)

var applyCmd = &cobra.Command{
	Use:   "apply [plan_file]",
	Short: "Run a Terraform apply and summarize the changes",
	Long: `terraform-applyx apply runs 'terraform init', plans (unless a plan file is
given), applies the plan, and writes a change summary: one collapsible log
group per changed resource, grouped by action, plus the apply_status,
resources_changed and change_details outputs for the invoking workflow.

Credentials and secrets are injected into the child process environment only;
the parent environment is never modified.

Examples:
  # Apply the configuration in the current directory
  terraform-applyx apply

  # Apply a previously created plan in another directory
  terraform-applyx apply tfplan.binary --working-dir=infra/prod

  # Record the applied changes in the history database
  terraform-applyx apply --record-history --history-pass=secret`,
	RunE: runApply,
}

func runApply(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadAndMerge(cmd, args)
	if err != nil {
		return err
	}

	log := logging.New(cfg.LogLevel)
	return runner.Run(cmd.Context(), cfg, ci.Stdout(), ci.NewOutputs(), log)
}

func init() {
	rootCmd.AddCommand(applyCmd)
	registerPipelineFlags(applyCmd)

	applyCmd.Flags().Bool("record-history", false, "Record applied changes in the history database")
	applyCmd.Flags().String("history-uri", "bolt://localhost:7687", "URI for the history database")
	applyCmd.Flags().String("history-user", "neo4j", "Username for the history database")
	applyCmd.Flags().String("history-pass", "", "Password for the history database")
}

func registerPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().String("working-dir", ".", "Directory containing the Terraform configuration")
	cmd.Flags().String("plan", "", "Path to a terraform plan file (optional)")
	cmd.Flags().String("credentials", "", "Provider credential blob to materialize for the child process")
	cmd.Flags().String("secrets", "", "JSON object of secrets exported as TF_VAR_secrets")
	cmd.Flags().String("log-level", "info", "Diagnostic log level (debug, info, warn, error)")
}
