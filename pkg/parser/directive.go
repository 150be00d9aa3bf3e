package parser

import (
	"strings"

	"github.com/walteh/patchrc/pkg/patch"
	"gitlab.com/tozd/go/errors"
)

// operationKeywords maps each script keyword to its kind, in the priority
// order keywords are tried. The colon is part of the token for the three
// content-taking kinds, so an abandoned attempt never moves the cursor.
var operationKeywords = []struct {
	kind  patch.Kind
	token string
}{
	{patch.Replace, "REPLACE WITH:"},
	{patch.AddBefore, "ADD BEFORE:"},
	{patch.AddAfter, "ADD AFTER:"},
	{patch.Delete, "DELETE"},
}

// parseFileDirective parses a FILE: directive and returns the target path
// with backslashes normalized to forward slashes.
func parseFileDirective(c *cursor) (string, error) {
	c.skipSpace()
	if !c.tryConsume("FILE:") {
		return "", errors.Errorf("Expected 'FILE:' at line %d", c.line)
	}

	path := strings.TrimSpace(c.consumeUntil("FIND:", "\n"))
	if path == "" {
		return "", errors.New("Empty file path")
	}
	return strings.ReplaceAll(path, `\`, "/"), nil
}

// parseFindBlock parses a FIND: block and returns the trimmed match text.
func parseFindBlock(c *cursor) (string, error) {
	c.skipSpace()
	if !c.tryConsume("FIND:") {
		return "", errors.Errorf("Expected 'FIND:' at line %d", c.line)
	}

	c.skipSpace()
	return strings.TrimSpace(c.consumeUntil("REPLACE WITH:", "ADD BEFORE:", "ADD AFTER:", "DELETE")), nil
}

// parseOperation tries each operation keyword in priority order. It returns
// found=false when no keyword matches, which is absence rather than a parse
// failure; the caller decides what absence means at its position.
func parseOperation(c *cursor) (kind patch.Kind, content string, found bool) {
	c.skipSpace()

	for _, kw := range operationKeywords {
		if !c.tryConsume(kw.token) {
			continue
		}
		if kw.kind == patch.Delete {
			return patch.Delete, "", true
		}

		c.skipSpace()
		content = strings.TrimSpace(c.consumeUntil("\nFIND:", "\nFILE:"))
		return kw.kind, content, true
	}

	return 0, "", false
}
