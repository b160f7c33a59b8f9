package plan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terraform-applyx/internal/render"
)

func TestDecodeSamplePlan(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "sample_plan.json"))
	require.NoError(t, err, "failed to read test data file")

	doc, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, doc.ResourceChanges, 4)

	bucket := doc.ResourceChanges[0]
	assert.Equal(t, "google_storage_bucket.assets", bucket.Address)
	assert.Equal(t, []string{"create"}, bucket.Change.Actions)
	assert.Equal(t, render.Object, bucket.Change.After.Kind())

	replace := doc.ResourceChanges[1]
	assert.Equal(t, []string{"delete", "create"}, replace.Change.Actions)

	deleted := doc.ResourceChanges[2]
	assert.Equal(t, render.Null, deleted.Change.After.Kind())
}

func TestDecodeAbsentResourceChanges(t *testing.T) {
	doc, err := Decode([]byte(`{"format_version": "1.2"}`))
	require.NoError(t, err)
	assert.Empty(t, doc.ResourceChanges)
}

func TestDecodeMalformedDocument(t *testing.T) {
	_, err := Decode([]byte("not a plan"))
	assert.Error(t, err)
}
