// Package runner sequences the apply pipeline: environment preparation,
// the terraform init/plan/apply subprocesses, and the summary report.
package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"terraform-applyx/internal/ci"
	"terraform-applyx/internal/config"
	"terraform-applyx/internal/creds"
	"terraform-applyx/internal/history"
	"terraform-applyx/internal/plan"
	"terraform-applyx/internal/report"
	"terraform-applyx/internal/secrets"
)

const terraformCmd = "terraform"

// Run executes the full apply pipeline. The stages are strictly sequential:
// terraform state is not safe to mutate concurrently, so each subprocess
// must finish before the next starts.
func Run(ctx context.Context, cfg *config.Config, sink *ci.Sink, outs *ci.Outputs, log zerolog.Logger) error {
	if err := validateWorkingDir(cfg.WorkingDir); err != nil {
		return err
	}

	env, err := buildEnv(cfg)
	if err != nil {
		return err
	}

	if err := runTerraform(ctx, cfg, env, log, "init", "-input=false"); err != nil {
		return err
	}

	planFile := cfg.PlanFile
	if planFile == "" {
		planFile = plan.DefaultPlanFile
		if err := runTerraform(ctx, cfg, env, log, "plan", "-input=false", "-out="+planFile); err != nil {
			return err
		}
	}

	if err := runTerraform(ctx, cfg, env, log, "apply", "-input=false", "-auto-approve", planFile); err != nil {
		return err
	}

	if err := outs.Set("apply_status", "success"); err != nil {
		return err
	}

	raw, err := plan.Show(ctx, cfg.WorkingDir, planFile, env)
	if err != nil {
		// The apply itself succeeded; report degrades to a zero summary
		log.Warn().Err(err).Msg("could not read back plan document")
		raw = nil
	}

	summary := report.Summarize(sink, raw)
	if err := publishSummary(outs, summary); err != nil {
		return err
	}

	if cfg.RecordHistory {
		if err := recordHistory(ctx, cfg, summary, log); err != nil {
			return err
		}
	}

	return nil
}

// Summarize runs only the reporting pipeline over an existing document. path
// may point at a JSON plan document or a binary plan file; binary plans are
// read back through `terraform show -json`.
func Summarize(ctx context.Context, cfg *config.Config, sink *ci.Sink, outs *ci.Outputs, log zerolog.Logger) error {
	if err := validateWorkingDir(cfg.WorkingDir); err != nil {
		return err
	}

	path := cfg.PlanFile
	if path == "" {
		path = plan.DefaultPlanFile
	}

	raw, err := loadDocument(ctx, cfg, path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("could not load plan document")
		raw = nil
	}

	summary := report.Summarize(sink, raw)
	return publishSummary(outs, summary)
}

// loadDocument reads path as a ready JSON document, falling back to
// `terraform show -json` for binary plan files.
func loadDocument(ctx context.Context, cfg *config.Config, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil && json.Valid(data) {
		return data, nil
	}

	env, envErr := buildEnv(cfg)
	if envErr != nil {
		return nil, envErr
	}
	return plan.Show(ctx, cfg.WorkingDir, path, env)
}

// publishSummary surfaces the machine outputs. A change_details marshal
// failure is fatal: downstream consumers rely on the value being present
// whenever apply_status is success.
func publishSummary(outs *ci.Outputs, summary report.Summary) error {
	details, err := json.Marshal(summary.Detail)
	if err != nil {
		return fmt.Errorf("failed to serialize change details: %w", err)
	}

	if err := outs.Set("resources_changed", strconv.Itoa(summary.ResourcesChanged)); err != nil {
		return err
	}
	return outs.Set("change_details", string(details))
}

// buildEnv assembles the explicit child-process environment: the parent
// environment plus the credential file pointer and the exported secrets
// variable. The parent process environment is never mutated.
func buildEnv(cfg *config.Config) ([]string, error) {
	env := os.Environ()

	credEntry, _, err := creds.Materialize(cfg.Credentials, cfg.WorkingDir)
	if err != nil {
		return nil, err
	}
	if credEntry != "" {
		env = append(env, credEntry)
	}

	secretEntry, err := secrets.EnvEntry(cfg.Secrets)
	if err != nil {
		return nil, err
	}
	env = append(env, secretEntry)

	return env, nil
}

func runTerraform(ctx context.Context, cfg *config.Config, env []string, log zerolog.Logger, args ...string) error {
	log.Info().Str("stage", args[0]).Msg("running terraform")

	cmd := exec.CommandContext(ctx, terraformCmd, args...)
	cmd.Dir = cfg.WorkingDir
	cmd.Env = env
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("terraform %s failed: %w", args[0], err)
	}
	return nil
}

func validateWorkingDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("working directory %s is not accessible: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("working directory %s is not a directory", dir)
	}
	return nil
}

func recordHistory(ctx context.Context, cfg *config.Config, summary report.Summary, log zerolog.Logger) error {
	if err := validateHistoryConfig(&cfg.History); err != nil {
		return err
	}

	log.Info().Str("uri", cfg.History.URI).Msg("recording apply history")

	client, err := history.NewClient(cfg.History.URI, cfg.History.User, cfg.History.Password)
	if err != nil {
		return fmt.Errorf("failed to create history client: %w", err)
	}
	defer client.Close(ctx)

	if err := client.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("failed to connect to history database: %w", err)
	}

	if err := client.RecordChanges(ctx, summary.Detail, time.Now()); err != nil {
		return fmt.Errorf("failed to record apply history: %w", err)
	}

	log.Info().Msg("apply history recorded")
	return nil
}

func validateHistoryConfig(cfg *config.HistoryConfig) error {
	if cfg.URI == "" || cfg.User == "" || cfg.Password == "" {
		return fmt.Errorf("history-uri, history-user, and history-pass are required when recording history. Please configure them in .terraform-applyx.yaml or pass them as flags")
	}
	return nil
}
