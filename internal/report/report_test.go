package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terraform-applyx/internal/ci"
	"terraform-applyx/internal/classify"
)

func TestSummarizeSingleCreate(t *testing.T) {
	doc := `{"resource_changes": [
		{"address": "google_storage_bucket.x", "change": {"actions": ["create"], "after": {"name": "x"}}}
	]}`

	var buf bytes.Buffer
	summary := Summarize(ci.NewSink(&buf), []byte(doc))

	assert.Equal(t, 1, summary.ResourcesChanged)
	require.Len(t, summary.Detail.Create, 1)
	assert.Equal(t, "google_storage_bucket.x", summary.Detail.Create[0].Address)
	assert.Equal(t, "        - name: \"x\"", summary.Detail.Create[0].Attributes)
	assert.Empty(t, summary.Detail.Update)
	assert.Empty(t, summary.Detail.Delete)

	out := buf.String()
	assert.Contains(t, out, "CREATE: 1 | UPDATE: 0 | DELETE: 0")
	assert.Contains(t, out, "Resources created:")
	assert.Contains(t, out, "::group::google_storage_bucket.x\n")
	assert.Contains(t, out, "        - name: \"x\"\n")
	assert.Contains(t, out, "::endgroup::\n")
	assert.NotContains(t, out, "Resources updated:")
	assert.NotContains(t, out, "Resources deleted:")
}

func TestSummarizeReplaceCountsOnce(t *testing.T) {
	doc := `{"resource_changes": [
		{"address": "aws_instance.web", "change": {"actions": ["delete", "create"], "after": {"ami": "ami-9"}}}
	]}`

	var buf bytes.Buffer
	summary := Summarize(ci.NewSink(&buf), []byte(doc))

	// One source record, even though it appears in two buckets
	assert.Equal(t, 1, summary.ResourcesChanged)
	assert.Len(t, summary.Detail.Create, 1)
	assert.Len(t, summary.Detail.Delete, 1)
	assert.Contains(t, buf.String(), "CREATE: 1 | UPDATE: 0 | DELETE: 1")
}

func TestSummarizeNoOpStillCounted(t *testing.T) {
	doc := `{"resource_changes": [
		{"address": "aws_iam_role.ro", "change": {"actions": ["no-op"], "after": {"name": "ro"}}}
	]}`

	var buf bytes.Buffer
	summary := Summarize(ci.NewSink(&buf), []byte(doc))

	assert.Equal(t, 1, summary.ResourcesChanged)
	assert.Contains(t, buf.String(), "CREATE: 0 | UPDATE: 0 | DELETE: 0")
}

func TestSummarizeAbsentResourceChanges(t *testing.T) {
	var buf bytes.Buffer
	summary := Summarize(ci.NewSink(&buf), []byte(`{}`))

	assert.Zero(t, summary.ResourcesChanged)
	assert.Contains(t, buf.String(), "CREATE: 0 | UPDATE: 0 | DELETE: 0")
}

func TestSummarizeDegradesOnMalformedDocument(t *testing.T) {
	for name, raw := range map[string][]byte{
		"empty":     nil,
		"not json":  []byte("Terraform refused"),
		"truncated": []byte(`{"resource_changes": [`),
	} {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			summary := Summarize(ci.NewSink(&buf), raw)

			assert.Zero(t, summary.ResourcesChanged)
			assert.Empty(t, summary.Detail.Create)
			assert.Empty(t, summary.Detail.Update)
			assert.Empty(t, summary.Detail.Delete)
			assert.Contains(t, buf.String(), "::warning::")
		})
	}
}

func TestWriteCategoryOrder(t *testing.T) {
	set := classify.ChangeSet{
		Create: []classify.Entry{{Address: "a.one"}},
		Update: []classify.Entry{{Address: "b.two"}},
		Delete: []classify.Entry{{Address: "c.three"}},
	}

	var buf bytes.Buffer
	summary := Write(ci.NewSink(&buf), set, 3)
	assert.Equal(t, 3, summary.ResourcesChanged)

	out := buf.String()
	created := bytes.Index([]byte(out), []byte("Resources created:"))
	updated := bytes.Index([]byte(out), []byte("Resources updated:"))
	deleted := bytes.Index([]byte(out), []byte("Resources deleted:"))

	require.True(t, created >= 0 && updated >= 0 && deleted >= 0)
	assert.Less(t, created, updated)
	assert.Less(t, updated, deleted)
}
