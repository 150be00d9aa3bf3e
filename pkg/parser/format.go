package parser

import (
	"strings"

	"github.com/walteh/patchrc/pkg/patch"
)

// Format serializes operations back to the patch-script grammar, grouped by
// target path in first-seen order. Parsing the result yields an equal
// operation list, since payloads are stored trimmed and the grammar trims on
// the way back in.
func Format(ops []patch.Operation) string {
	grouped, paths := patch.Group(ops)

	var b strings.Builder
	for i, path := range paths {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("FILE: ")
		b.WriteString(path)
		b.WriteString("\n")

		for _, op := range grouped[path] {
			b.WriteString("FIND:\n")
			b.WriteString(op.Find)
			b.WriteString("\n")
			if op.Kind == patch.Delete {
				b.WriteString("DELETE\n")
				continue
			}
			b.WriteString(op.Kind.String())
			b.WriteString(":\n")
			b.WriteString(op.Content)
			b.WriteString("\n")
		}
	}
	return b.String()
}
