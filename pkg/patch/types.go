// Package patch defines the edit operations a patch script describes and
// applies them to file content.
package patch

import "fmt"

// Kind identifies what an operation does to its matched text.
type Kind int

const (
	// Replace substitutes the matched text with new content.
	Replace Kind = iota
	// AddBefore inserts new content (plus a newline) before the matched text.
	AddBefore
	// AddAfter inserts a newline plus new content after the matched text.
	AddAfter
	// Delete removes the matched text.
	Delete
)

// String returns the script keyword for the kind.
func (k Kind) String() string {
	switch k {
	case Replace:
		return "REPLACE WITH"
	case AddBefore:
		return "ADD BEFORE"
	case AddAfter:
		return "ADD AFTER"
	case Delete:
		return "DELETE"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Operation is one localized edit parsed from a patch script. Content is the
// replacement text for Replace/AddBefore/AddAfter and is never read for Delete.
type Operation struct {
	Path    string // target file path, backslashes normalized to /
	Find    string // exact text to locate, unique within the file at apply time
	Kind    Kind
	Content string
}

// ParseError describes one malformed block in a patch script. Path is
// "unknown" when the block failed before a FILE: directive parsed.
// OperationIndex counts the operations successfully parsed before the failure.
type ParseError struct {
	Path           string
	Message        string
	OperationIndex int
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Report formats the error the way the CLI prints it.
func (e ParseError) Report() string {
	return fmt.Sprintf("- %s: %s", e.Path, e.Message)
}

// ApplyError describes a failure while applying operations to one file.
// OperationIndex is the position of the failing operation within that file's
// batch, or -1 for file-level failures such as a missing file.
type ApplyError struct {
	Path           string
	Message        string
	OperationIndex int
}

func (e ApplyError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Report formats the error the way the CLI prints it.
func (e ApplyError) Report() string {
	return fmt.Sprintf("- %s: %s", e.Path, e.Message)
}
