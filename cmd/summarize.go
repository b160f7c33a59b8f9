package cmd

import (
	"github.com/spf13/cobra"

	"terraform-applyx/internal/ci"
	"terraform-applyx/internal/config"
	"terraform-applyx/internal/logging"
	"terraform-applyx/internal/runner"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [plan_file]",
	Short: "Summarize a Terraform plan without applying it",
	Long: `terraform-applyx summarize reads a plan document and writes the same change
summary that 'apply' produces, without touching any infrastructure. The
argument may be a JSON document from 'terraform show -json' or a binary plan
file, which is read back through terraform.

A missing or unparseable document yields a zero-change summary with a warning
rather than a failure.

Examples:
  # Summarize a plan document exported earlier
  terraform show -json tfplan.binary > plan.json
  terraform-applyx summarize plan.json

  # Summarize a binary plan directly
  terraform-applyx summarize tfplan.binary`,
	RunE: runSummarize,
}

func runSummarize(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadAndMerge(cmd, args)
	if err != nil {
		return err
	}

	log := logging.New(cfg.LogLevel)
	return runner.Summarize(cmd.Context(), cfg, ci.Stdout(), ci.NewOutputs(), log)
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
	registerPipelineFlags(summarizeCmd)
}
