// Package report turns a classified change set into grouped console output
// and the machine-readable summary surfaced to the automation platform.
package report

import (
	"terraform-applyx/internal/ci"
	"terraform-applyx/internal/classify"
	"terraform-applyx/internal/plan"
)

// Summary is the machine-consumable result of one summarization run.
// ResourcesChanged counts source change records, so a replace (delete+create)
// counts once even though it lands in two buckets of Detail.
type Summary struct {
	ResourcesChanged int
	Detail           classify.ChangeSet
}

type category struct {
	label   string
	entries []classify.Entry
}

// Write emits the console report for set to sink and returns the Summary.
// Layout: a header line with the total, a per-action count line, then one
// collapsible log group per changed resource, grouped under its category.
func Write(sink *ci.Sink, set classify.ChangeSet, total int) Summary {
	creates, updates, deletes := set.Counts()

	sink.Linef("Terraform apply finished: %d resource change(s)", total)
	sink.Linef("CREATE: %d | UPDATE: %d | DELETE: %d", creates, updates, deletes)

	categories := []category{
		{label: "Resources created:", entries: set.Create},
		{label: "Resources updated:", entries: set.Update},
		{label: "Resources deleted:", entries: set.Delete},
	}

	for _, cat := range categories {
		if len(cat.entries) == 0 {
			continue
		}
		sink.Line(cat.label)
		for _, entry := range cat.entries {
			sink.StartGroup(entry.Address)
			if entry.Attributes != "" {
				sink.Line(entry.Attributes)
			}
			sink.EndGroup()
		}
		sink.Blank()
	}

	return Summary{ResourcesChanged: total, Detail: set}
}

// Degraded emits the warning for an absent or unparseable plan document and
// returns the zero-change Summary. The pipeline still completes normally
// after this path.
func Degraded(sink *ci.Sink) Summary {
	sink.Warningf("plan document missing or unparseable; reporting zero changes")
	return Summary{}
}

// Summarize decodes a raw plan document, classifies its resource changes and
// writes the console report. Malformed or empty input degrades to a
// zero-change summary instead of failing.
func Summarize(sink *ci.Sink, raw []byte) Summary {
	if len(raw) == 0 {
		return Degraded(sink)
	}

	doc, err := plan.Decode(raw)
	if err != nil {
		return Degraded(sink)
	}

	set := classify.Classify(doc.ResourceChanges)
	return Write(sink, set, len(doc.ResourceChanges))
}
