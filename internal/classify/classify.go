// Package classify partitions resource changes by action kind.
package classify

import (
	"terraform-applyx/internal/plan"
	"terraform-applyx/internal/render"
)

const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Entry pairs a resource address with its rendered after-state attributes.
type Entry struct {
	Address    string `json:"address"`
	Attributes string `json:"attributes"`
}

// ChangeSet holds the classified changes, one bucket per recognized action.
// A replace (delete+create) appears in both its buckets; the buckets are not
// deduplicated against each other.
type ChangeSet struct {
	Create []Entry `json:"create"`
	Update []Entry `json:"update"`
	Delete []Entry `json:"delete"`
}

// Classify files each change under every recognized action it declares,
// preserving the document order within each bucket. Attributes are rendered
// once per change record. Unrecognized actions (no-op, read) contribute to
// no bucket.
func Classify(changes []plan.ResourceChange) ChangeSet {
	var set ChangeSet

	for _, rc := range changes {
		entry := Entry{
			Address:    rc.Address,
			Attributes: render.Render(rc.Change.After, render.AttributeIndent),
		}

		for _, action := range rc.Change.Actions {
			switch action {
			case ActionCreate:
				set.Create = append(set.Create, entry)
			case ActionUpdate:
				set.Update = append(set.Update, entry)
			case ActionDelete:
				set.Delete = append(set.Delete, entry)
			}
		}
	}

	return set
}

// Counts returns the per-bucket entry counts.
func (s ChangeSet) Counts() (create, update, del int) {
	return len(s.Create), len(s.Update), len(s.Delete)
}

// Len is the sum of all bucket sizes. Note that this double-counts replaces;
// the reported resources_changed output counts source records instead.
func (s ChangeSet) Len() int {
	return len(s.Create) + len(s.Update) + len(s.Delete)
}
