package history

import (
	"bytes"
	"time"

	"terraform-applyx/internal/classify"
)

// changesToCypher converts a change set to a single parameterized query.
// Parameters keep the resource addresses out of the query text, which
// prevents Cypher injection and lets the server cache the plan.
func changesToCypher(set classify.ChangeSet, appliedAt time.Time) (string, map[string]interface{}) {
	var query bytes.Buffer
	params := make(map[string]interface{})

	buckets := []struct {
		action  string
		entries []classify.Entry
	}{
		{classify.ActionCreate, set.Create},
		{classify.ActionUpdate, set.Update},
		{classify.ActionDelete, set.Delete},
	}

	var changesData []map[string]interface{}
	for _, b := range buckets {
		for _, entry := range b.entries {
			changesData = append(changesData, map[string]interface{}{
				"address": entry.Address,
				"action":  b.action,
			})
		}
	}

	if len(changesData) == 0 {
		return "", params
	}

	params["changes"] = changesData
	params["applied_at"] = appliedAt.UTC().Format(time.RFC3339)

	query.WriteString("UNWIND $changes AS change_data\n")
	query.WriteString("MERGE (r:Resource {address: change_data.address})\n")
	query.WriteString("SET r.last_action = change_data.action, r.last_applied_at = $applied_at\n")

	return query.String(), params
}
