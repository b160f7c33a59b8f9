package plan

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"

	"terraform-applyx/internal/render"
)

const (
	terraformCmd = "terraform"
	showSubCmd   = "show"
	jsonFlag     = "-json"

	// DefaultPlanFile is where the plan stage writes its binary plan.
	DefaultPlanFile = "tfplan.binary"
)

// Document represents the JSON output of `terraform show -json` for a plan
// or state. Only resource changes are consumed; an absent resource_changes
// key decodes as an empty list.
type Document struct {
	ResourceChanges []ResourceChange `json:"resource_changes"`
}

// ResourceChange represents one planned or applied change for a resource.
type ResourceChange struct {
	Address string `json:"address"`
	Change  Change `json:"change"`
}

// Change represents the details of a resource change. After holds the
// resource attributes following the change; it is null when the resource is
// being destroyed with nothing left behind.
type Change struct {
	Actions []string     `json:"actions"`
	After   render.Value `json:"after"`
}

// Decode unmarshals a plan document from a byte slice.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan JSON: %w", err)
	}
	return &doc, nil
}

// Show executes `terraform show -json` against planFile in workDir and
// returns the raw JSON document. env is the complete environment for the
// child process; passing nil inherits the parent environment.
func Show(ctx context.Context, workDir, planFile string, env []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, terraformCmd, showSubCmd, jsonFlag, planFile)
	cmd.Dir = workDir
	cmd.Env = env

	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("terraform show failed: %w", err)
	}
	return output, nil
}
