// Package creds materializes a provider credential blob as a file and
// produces the environment entry that points the provider SDK at it.
package creds

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	credentialsEnvVar = "GOOGLE_APPLICATION_CREDENTIALS"

	// FileName is the credential file written into the working directory.
	FileName = ".applyx-credentials.json"
)

// Materialize writes blob to a file under dir, readable only by the owner,
// and returns the environment entry pointing at it plus the file path. The
// path is absolute so the child process resolves it regardless of its own
// working directory. An empty blob produces no entry and no file.
func Materialize(blob, dir string) (envEntry, path string, err error) {
	if blob == "" {
		return "", "", nil
	}

	path, err = filepath.Abs(filepath.Join(dir, FileName))
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve credentials path: %w", err)
	}
	if err := os.WriteFile(path, []byte(blob), 0600); err != nil {
		return "", "", fmt.Errorf("failed to write credentials file: %w", err)
	}

	return fmt.Sprintf("%s=%s", credentialsEnvVar, path), path, nil
}
