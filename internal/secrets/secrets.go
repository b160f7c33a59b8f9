// Package secrets exports a JSON map of secrets as a single Terraform
// variable for the child process environment.
package secrets

import (
	"encoding/json"
	"fmt"
)

// EnvVar is the variable the secrets map is exported as; Terraform picks it
// up as var.secrets.
const EnvVar = "TF_VAR_secrets"

// EnvEntry validates that blob is a JSON object and returns the environment
// entry exporting it. An empty blob is treated as the empty object.
func EnvEntry(blob string) (string, error) {
	if blob == "" {
		blob = "{}"
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal([]byte(blob), &m); err != nil {
		return "", fmt.Errorf("secrets must be a JSON object: %w", err)
	}

	// Re-marshal so the exported value is compact regardless of input shape.
	compact, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("failed to re-encode secrets: %w", err)
	}

	return fmt.Sprintf("%s=%s", EnvVar, string(compact)), nil
}
