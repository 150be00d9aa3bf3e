package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/patchrc/pkg/patch"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		wantOps []patch.Operation
	}{
		{
			name:   "single_replace",
			script: "FILE: a.py\nFIND:\nfoo\nREPLACE WITH:\nbar\n",
			wantOps: []patch.Operation{
				{Path: "a.py", Find: "foo", Kind: patch.Replace, Content: "bar"},
			},
		},
		{
			name:   "bare_delete_needs_no_colon",
			script: "FILE: a.py\nFIND:\nold line\nDELETE\n",
			wantOps: []patch.Operation{
				{Path: "a.py", Find: "old line", Kind: patch.Delete},
			},
		},
		{
			name: "all_four_kinds_in_one_file",
			script: "FILE: a.py\n" +
				"FIND:\none\nREPLACE WITH:\nONE\n" +
				"FIND:\ntwo\nADD BEFORE:\nbefore-two\n" +
				"FIND:\nthree\nADD AFTER:\nafter-three\n" +
				"FIND:\nfour\nDELETE\n",
			wantOps: []patch.Operation{
				{Path: "a.py", Find: "one", Kind: patch.Replace, Content: "ONE"},
				{Path: "a.py", Find: "two", Kind: patch.AddBefore, Content: "before-two"},
				{Path: "a.py", Find: "three", Kind: patch.AddAfter, Content: "after-three"},
				{Path: "a.py", Find: "four", Kind: patch.Delete},
			},
		},
		{
			name: "multiple_files",
			script: "FILE: a.py\nFIND:\nx\nDELETE\n" +
				"FILE: b.py\nFIND:\ny\nREPLACE WITH:\nz\n",
			wantOps: []patch.Operation{
				{Path: "a.py", Find: "x", Kind: patch.Delete},
				{Path: "b.py", Find: "y", Kind: patch.Replace, Content: "z"},
			},
		},
		{
			name:   "backslashes_normalized_in_path",
			script: "FILE: src\\pkg\\main.py\nFIND:\nx\nDELETE\n",
			wantOps: []patch.Operation{
				{Path: "src/pkg/main.py", Find: "x", Kind: patch.Delete},
			},
		},
		{
			name: "multiline_payloads_keep_internal_blank_lines",
			script: "FILE: a.py\nFIND:\ndef f():\n    pass\nREPLACE WITH:\ndef f():\n\n    return 1\n" +
				"FILE: b.py\nFIND:\nx\nDELETE\n",
			wantOps: []patch.Operation{
				{Path: "a.py", Find: "def f():\n    pass", Kind: patch.Replace, Content: "def f():\n\n    return 1"},
				{Path: "b.py", Find: "x", Kind: patch.Delete},
			},
		},
		{
			name:   "empty_find_is_allowed_by_default",
			script: "FILE: a.py\nFIND:\nREPLACE WITH:\nbar\n",
			wantOps: []patch.Operation{
				{Path: "a.py", Find: "", Kind: patch.Replace, Content: "bar"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops, parseErrs := Parse(tt.script)
			require.Empty(t, parseErrs)
			assert.Equal(t, tt.wantOps, ops)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name        string
		script      string
		wantOps     int
		wantPath    string
		wantMessage string
		wantIndex   int
	}{
		{
			name:        "missing_file_directive",
			script:      "FIND:\nx\nDELETE\n",
			wantOps:     0,
			wantPath:    "unknown",
			wantMessage: "Expected 'FILE:' at line 1",
			wantIndex:   0,
		},
		{
			name:        "empty_file_path",
			script:      "FILE:\nFIND:\nx\nDELETE\n",
			wantOps:     0,
			wantPath:    "unknown",
			wantMessage: "Empty file path",
			wantIndex:   0,
		},
		{
			name:        "garbage_instead_of_find",
			script:      "FILE: a.py\nBOGUS\n",
			wantOps:     0,
			wantPath:    "a.py",
			wantMessage: "Expected 'FIND:' at line 2",
			wantIndex:   0,
		},
		{
			name:        "find_without_operation",
			script:      "FILE: a.py\nFIND:\nx\nDELETE\nFILE: b.py\nFIND:\ny\n",
			wantOps:     1,
			wantPath:    "b.py",
			wantMessage: "Expected operation",
			wantIndex:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops, parseErrs := Parse(tt.script)
			assert.Len(t, ops, tt.wantOps)
			require.Len(t, parseErrs, 1)
			assert.Equal(t, tt.wantPath, parseErrs[0].Path)
			assert.Contains(t, parseErrs[0].Message, tt.wantMessage)
			assert.Equal(t, tt.wantIndex, parseErrs[0].OperationIndex)
		})
	}
}

func TestParse_RecoversAtNextFile(t *testing.T) {
	script := "FILE: a.py\nBOGUS\n\nFILE: b.py\nFIND:\ny\nDELETE\n"

	ops, parseErrs := Parse(script)

	require.Len(t, parseErrs, 1, "the malformed block is one error, not a parse abort")
	assert.Equal(t, "a.py", parseErrs[0].Path)
	assert.Equal(t, 0, parseErrs[0].OperationIndex)

	require.Len(t, ops, 1, "the block after the malformed one still parses")
	assert.Equal(t, patch.Operation{Path: "b.py", Find: "y", Kind: patch.Delete}, ops[0])
}

func TestParseWithOptions_Strict(t *testing.T) {
	script := "FILE: a.py\nFIND:\nREPLACE WITH:\nbar\n"

	ops, parseErrs := ParseWithOptions(script, Options{Strict: true})

	assert.Empty(t, ops)
	require.Len(t, parseErrs, 1)
	assert.Equal(t, "a.py", parseErrs[0].Path)
	assert.Equal(t, "Empty find text", parseErrs[0].Message)
}

func TestParse_KeywordPriorityIsLiteralPrefix(t *testing.T) {
	// "ADD BEFORE" without a colon is not an operation; the next keyword in
	// priority order is tried from the same position and also misses, so the
	// block fails rather than guessing.
	script := "FILE: a.py\nFIND:\nx\nADD BEFORE\ny\n"

	ops, parseErrs := Parse(script)

	assert.Empty(t, ops)
	require.Len(t, parseErrs, 1)
	assert.Contains(t, parseErrs[0].Message, "Expected operation")
}

func TestFormat_RoundTrip(t *testing.T) {
	ops := []patch.Operation{
		{Path: "src/a.py", Find: "def f():\n    pass", Kind: patch.Replace, Content: "def f():\n\n    return 1"},
		{Path: "src/a.py", Find: "import os", Kind: patch.AddAfter, Content: "import sys"},
		{Path: "b.txt", Find: "stale line", Kind: patch.Delete},
		{Path: "b.txt", Find: "header", Kind: patch.AddBefore, Content: "# generated"},
	}

	script := Format(ops)
	reparsed, parseErrs := Parse(script)

	require.Empty(t, parseErrs)
	assert.Equal(t, ops, reparsed)
}

func TestFormat_SingleDelete(t *testing.T) {
	ops := []patch.Operation{{Path: "a.py", Find: "x", Kind: patch.Delete}}
	assert.Equal(t, "FILE: a.py\nFIND:\nx\nDELETE\n", Format(ops))
}
