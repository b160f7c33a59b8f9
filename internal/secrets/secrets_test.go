package secrets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvEntryCompactsObject(t *testing.T) {
	entry, err := EnvEntry(`{
		"db_password": "hunter2"
	}`)
	require.NoError(t, err)
	assert.Equal(t, `TF_VAR_secrets={"db_password":"hunter2"}`, entry)
}

func TestEnvEntryEmptyBlobIsEmptyObject(t *testing.T) {
	entry, err := EnvEntry("")
	require.NoError(t, err)
	assert.Equal(t, "TF_VAR_secrets={}", entry)
}

func TestEnvEntryRejectsNonObject(t *testing.T) {
	for _, blob := range []string{`["a"]`, `"text"`, `not json`} {
		_, err := EnvEntry(blob)
		assert.Error(t, err, "blob %s", blob)
	}
}
