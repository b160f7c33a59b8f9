package ci

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// outputFileEnv names the file the platform designates for step outputs.
const outputFileEnv = "GITHUB_OUTPUT"

// Outputs surfaces key-value pairs to the invoking automation platform by
// appending them to the designated output file. When no output file is
// designated (e.g. running locally), pairs are written to fallback instead.
type Outputs struct {
	path     string
	fallback io.Writer
}

// NewOutputs returns an Outputs using the platform-designated output file,
// falling back to standard output when none is set.
func NewOutputs() *Outputs {
	return &Outputs{
		path:     os.Getenv(outputFileEnv),
		fallback: os.Stdout,
	}
}

// NewOutputsTo returns an Outputs that always appends to the file at path.
// Intended for tests.
func NewOutputsTo(path string) *Outputs {
	return &Outputs{path: path}
}

// Set records one output pair. Multi-line values are written in the
// platform's heredoc form so they survive the line-oriented file format.
func (o *Outputs) Set(key, value string) error {
	entry := formatEntry(key, value)

	if o.path == "" {
		if o.fallback != nil {
			fmt.Fprint(o.fallback, entry)
		}
		return nil
	}

	f, err := os.OpenFile(o.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("could not open output file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(entry); err != nil {
		return fmt.Errorf("failed to write output %s: %w", key, err)
	}
	return nil
}

func formatEntry(key, value string) string {
	if strings.Contains(value, "\n") {
		return fmt.Sprintf("%s<<APPLYX_EOF\n%s\nAPPLYX_EOF\n", key, value)
	}
	return fmt.Sprintf("%s=%s\n", key, value)
}
