package ci

import (
	"os"
	"strings"
)

// Input reads the workflow setting with the given name from the INPUT_<NAME>
// environment variable, following the platform convention of uppercasing the
// name and replacing spaces with underscores. Missing settings return the
// empty string.
func Input(name string) string {
	key := "INPUT_" + strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
	return os.Getenv(key)
}

// InputOrDefault returns the setting value, or def when the setting is unset
// or empty.
func InputOrDefault(name, def string) string {
	if v := Input(name); v != "" {
		return v
	}
	return def
}
