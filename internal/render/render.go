// Package render formats the nested attribute trees found in Terraform plan
// documents as indented, human-readable text.
package render

import "strings"

// AttributeIndent is the starting indentation used when attribute blocks are
// rendered inside a collapsible log group, so the text sits visually inside
// the group marker lines.
const AttributeIndent = 8

// Render formats an attribute object as one line per attribute, indented by
// indent spaces. Nested objects introduce a key line and are rendered at
// indent+2; scalars, nulls and lists are rendered as compact JSON literals on
// a single line. Anything that is not an object renders as the empty string.
//
// The result has no trailing newline. Rendering is deterministic: the line
// order follows the key order of the source document.
func Render(v Value, indent int) string {
	if v.Kind() != Object {
		return ""
	}

	var lines []string
	renderObject(v, indent, &lines)
	return strings.Join(lines, "\n")
}

func renderObject(v Value, indent int, lines *[]string) {
	pad := strings.Repeat(" ", indent)
	for _, f := range v.Fields() {
		if f.Value.Kind() == Object {
			*lines = append(*lines, pad+"- "+f.Name+":")
			renderObject(f.Value, indent+2, lines)
			continue
		}
		*lines = append(*lines, pad+"- "+f.Name+": "+f.Value.literal())
	}
}
