package parser

import (
	"strings"

	"github.com/walteh/patchrc/pkg/patch"
	"gitlab.com/tozd/go/errors"
)

// Options adjusts how strictly a script is parsed.
type Options struct {
	// Strict rejects FIND blocks whose match text is empty after trimming.
	// Off by default: an empty match reaches the applier and fails there.
	Strict bool
}

// Parse parses a whole patch script with default options.
func Parse(text string) ([]patch.Operation, []patch.ParseError) {
	return ParseWithOptions(text, Options{})
}

// ParseWithOptions parses a whole patch script into an ordered operation
// list. A malformed block is recorded as a ParseError and parsing resumes at
// the next FILE: directive, so one bad block never hides the rest of the
// script. Both lists come back in script order.
func ParseWithOptions(text string, opts Options) ([]patch.Operation, []patch.ParseError) {
	c := newCursor(text)
	var ops []patch.Operation
	var parseErrs []patch.ParseError

	// The last successfully parsed path labels errors in blocks that fail
	// before their own FILE: directive parses.
	path := ""

	for !c.done() {
		err := func() error {
			p, err := parseFileDirective(c)
			if err != nil {
				return err
			}
			path = p

			for !c.done() && !nextTokenIsFile(c) {
				find, err := parseFindBlock(c)
				if err != nil {
					return err
				}
				if opts.Strict && find == "" {
					return errors.New("Empty find text")
				}

				kind, content, found := parseOperation(c)
				if !found {
					return errors.Errorf("Expected operation at line %d", c.line)
				}

				ops = append(ops, patch.Operation{
					Path:    path,
					Find:    find,
					Kind:    kind,
					Content: content,
				})
				c.skipSpace()
			}
			return nil
		}()

		if err != nil {
			errPath := path
			if errPath == "" {
				errPath = "unknown"
			}
			parseErrs = append(parseErrs, patch.ParseError{
				Path:           errPath,
				Message:        err.Error(),
				OperationIndex: len(ops),
			})
			// Recovery: resync at the next FILE: directive
			c.consumeUntil("FILE:")
		}
	}

	return ops, parseErrs
}

// nextTokenIsFile reports whether the next non-whitespace text begins a
// FILE: directive, without moving the cursor.
func nextTokenIsFile(c *cursor) bool {
	pos := c.offset
	for pos < len(c.text) && isSpace(c.text[pos]) {
		pos++
	}
	return strings.HasPrefix(c.text[pos:], "FILE:")
}
