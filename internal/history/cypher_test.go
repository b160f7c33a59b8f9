package history

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terraform-applyx/internal/classify"
)

func TestChangesToCypher(t *testing.T) {
	set := classify.ChangeSet{
		Create: []classify.Entry{{Address: "aws_vpc.main"}},
		Delete: []classify.Entry{{Address: "aws_instance.old"}},
	}
	appliedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	query, params := changesToCypher(set, appliedAt)

	assert.True(t, strings.Contains(query, "UNWIND $changes AS change_data"))
	assert.True(t, strings.Contains(query, "MERGE (r:Resource {address: change_data.address})"))

	assert.Equal(t, "2026-03-01T12:00:00Z", params["applied_at"])

	changes, ok := params["changes"].([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, changes, 2)
	assert.Equal(t, "aws_vpc.main", changes[0]["address"])
	assert.Equal(t, classify.ActionCreate, changes[0]["action"])
	assert.Equal(t, "aws_instance.old", changes[1]["address"])
	assert.Equal(t, classify.ActionDelete, changes[1]["action"])
}

func TestChangesToCypherEmptySet(t *testing.T) {
	query, params := changesToCypher(classify.ChangeSet{}, time.Now())

	assert.Empty(t, query)
	assert.NotContains(t, params, "changes")
}
