package patch

import "strings"

// Apply performs a single operation against content and returns the rewritten
// content. The find text must occur exactly once: zero occurrences fail with
// "Context not found in file", two or more with "Context appears multiple
// times in file". The failing content is returned unchanged.
func Apply(content string, op Operation) (string, error) {
	idx := strings.Index(content, op.Find)
	if idx == -1 {
		return content, ApplyError{Path: op.Path, Message: "Context not found in file"}
	}

	// A second occurrence anywhere after the first start makes the match ambiguous
	if idx+1 <= len(content) && strings.Index(content[idx+1:], op.Find) != -1 {
		return content, ApplyError{Path: op.Path, Message: "Context appears multiple times in file"}
	}

	end := idx + len(op.Find)
	switch op.Kind {
	case Replace:
		return content[:idx] + op.Content + content[end:], nil
	case AddBefore:
		return content[:idx] + op.Content + "\n" + content[idx:], nil
	case AddAfter:
		return content[:end] + "\n" + op.Content + content[end:], nil
	case Delete:
		return content[:idx] + content[end:], nil
	default:
		return content, ApplyError{Path: op.Path, Message: "Unknown operation kind: " + op.Kind.String()}
	}
}

// ApplyAll applies a file's operations in order, each against the output of
// the previous. The first failure stops the batch and returns the original
// content untouched together with that single error, so a file is rewritten
// either completely or not at all.
func ApplyAll(content string, ops []Operation) (string, []ApplyError) {
	current := content
	for i, op := range ops {
		next, err := Apply(current, op)
		if err != nil {
			applyErr := err.(ApplyError)
			applyErr.OperationIndex = i
			return content, []ApplyError{applyErr}
		}
		current = next
	}
	return current, nil
}
