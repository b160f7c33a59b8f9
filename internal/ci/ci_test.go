package ci

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSinkGroupMarkers(t *testing.T) {
	var buf bytes.Buffer
	sink := NewSink(&buf)

	sink.Line("header")
	sink.StartGroup("aws_vpc.main")
	sink.Linef("detail %d", 1)
	sink.EndGroup()
	sink.Blank()
	sink.Warningf("degraded: %s", "no document")

	want := "header\n" +
		"::group::aws_vpc.main\n" +
		"detail 1\n" +
		"::endgroup::\n" +
		"\n" +
		"::warning::degraded: no document\n"
	assert.Equal(t, want, buf.String())
}

func TestInput(t *testing.T) {
	t.Setenv("INPUT_WORKING_DIRECTORY", "infra/prod")

	assert.Equal(t, "infra/prod", Input("working_directory"))
	assert.Equal(t, "infra/prod", Input("working directory"))
	assert.Empty(t, Input("missing"))
	assert.Equal(t, "fallback", InputOrDefault("missing", "fallback"))
}

func TestOutputsAppendToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outputs")
	outs := NewOutputsTo(path)

	require.NoError(t, outs.Set("apply_status", "success"))
	require.NoError(t, outs.Set("resources_changed", "3"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "apply_status=success\nresources_changed=3\n", string(data))
}

func TestOutputsMultilineValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outputs")
	outs := NewOutputsTo(path)

	require.NoError(t, outs.Set("change_details", "line one\nline two"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "change_details<<APPLYX_EOF\nline one\nline two\nAPPLYX_EOF\n", string(data))
}

func TestOutputsFallbackWriter(t *testing.T) {
	var buf bytes.Buffer
	outs := &Outputs{fallback: &buf}

	require.NoError(t, outs.Set("apply_status", "success"))
	assert.Equal(t, "apply_status=success\n", buf.String())
}
