// Package parser turns patch-script text into patch operations. The grammar
// is a flat sequence of FILE: blocks, each holding FIND: blocks paired with an
// operation keyword (REPLACE WITH:, ADD BEFORE:, ADD AFTER:, or bare DELETE).
package parser

// cursor is a forward-only position over the script text with 1-based line
// bookkeeping. Every method is total: reads past the end return zero values
// and advances clamp to the text length.
type cursor struct {
	text   string
	offset int
	line   int
}

func newCursor(text string) *cursor {
	return &cursor{text: text, line: 1}
}

// current returns the byte at the cursor, or 0 at end of text.
func (c *cursor) current() byte {
	if c.offset >= len(c.text) {
		return 0
	}
	return c.text[c.offset]
}

// peek returns the next up-to-n bytes without moving.
func (c *cursor) peek(n int) string {
	end := c.offset + n
	if end > len(c.text) {
		end = len(c.text)
	}
	return c.text[c.offset:end]
}

// advance moves forward n bytes, counting newlines as they pass.
func (c *cursor) advance(n int) {
	for i := 0; i < n && c.offset < len(c.text); i++ {
		if c.text[c.offset] == '\n' {
			c.line++
		}
		c.offset++
	}
}

func (c *cursor) done() bool {
	return c.offset >= len(c.text)
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// skipSpace advances past a maximal run of whitespace.
func (c *cursor) skipSpace() {
	for !c.done() && isSpace(c.current()) {
		c.advance(1)
	}
}

// consumeUntil accumulates text up to (not including) the first position
// where any delimiter matches the upcoming text, checking delimiters in the
// order given. Reaching end of input returns everything accumulated.
func (c *cursor) consumeUntil(delimiters ...string) string {
	start := c.offset
	for !c.done() {
		matched := false
		for _, d := range delimiters {
			if c.peek(len(d)) == d {
				matched = true
				break
			}
		}
		if matched {
			break
		}
		c.advance(1)
	}
	return c.text[start:c.offset]
}

// tryConsume advances past keyword and reports true if the upcoming text
// equals it exactly; otherwise the cursor is untouched.
func (c *cursor) tryConsume(keyword string) bool {
	if c.peek(len(keyword)) != keyword {
		return false
	}
	c.advance(len(keyword))
	return true
}
