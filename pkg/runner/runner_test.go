package runner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/patchrc/pkg/config"
	"github.com/walteh/patchrc/pkg/patch"
)

func testConfig() *config.PatchrcConfig {
	cfg := config.Default()
	return cfg
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRunner_PatchesFile(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, dir, "a.txt", "hello world\n")

	ops := []patch.Operation{
		{Path: target, Find: "world", Kind: patch.Replace, Content: "there"},
		{Path: target, Find: "hello there", Kind: patch.AddAfter, Content: "second line"},
	}

	results, applyErrs := New(testConfig(), false).Run(context.Background(), ops)

	assert.Empty(t, applyErrs)
	require.Len(t, results, 1)
	assert.Equal(t, StatusPatched, results[0].Status)
	assert.Equal(t, 2, results[0].Operations)
	assert.Equal(t, "hello there\nsecond line\n", readFile(t, target))
}

func TestRunner_FileNotFound(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.txt")
	ops := []patch.Operation{{Path: missing, Find: "x", Kind: patch.Delete}}

	results, applyErrs := New(testConfig(), false).Run(context.Background(), ops)

	require.Len(t, applyErrs, 1)
	assert.Equal(t, "File not found: "+missing, applyErrs[0].Message)
	assert.Equal(t, -1, applyErrs[0].OperationIndex)
	require.Len(t, results, 1)
	assert.Equal(t, StatusFailed, results[0].Status)
}

func TestRunner_FailedBatchLeavesFileUntouched(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, dir, "a.txt", "one two three")

	ops := []patch.Operation{
		{Path: target, Find: "one", Kind: patch.Replace, Content: "1"},
		{Path: target, Find: "missing", Kind: patch.Delete},
	}

	_, applyErrs := New(testConfig(), false).Run(context.Background(), ops)

	require.Len(t, applyErrs, 1)
	assert.Equal(t, 1, applyErrs[0].OperationIndex)
	assert.Equal(t, "Context not found in file", applyErrs[0].Message)
	assert.Equal(t, "one two three", readFile(t, target), "a failed batch must not write")
}

func TestRunner_FailureInOneFileDoesNotAffectOthers(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.txt", "old\n")
	bad := writeFile(t, dir, "bad.txt", "x\nx\n")

	ops := []patch.Operation{
		{Path: good, Find: "old", Kind: patch.Replace, Content: "new"},
		{Path: bad, Find: "x", Kind: patch.Delete},
	}

	_, applyErrs := New(testConfig(), false).Run(context.Background(), ops)

	require.Len(t, applyErrs, 1)
	assert.Equal(t, bad, applyErrs[0].Path)
	assert.Equal(t, "Context appears multiple times in file", applyErrs[0].Message)
	assert.Equal(t, "new\n", readFile(t, good))
	assert.Equal(t, "x\nx\n", readFile(t, bad))
}

func TestRunner_DryRunWritesNothing(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, dir, "a.txt", "before\n")

	ops := []patch.Operation{{Path: target, Find: "before", Kind: patch.Replace, Content: "after"}}

	results, applyErrs := New(testConfig(), true).Run(context.Background(), ops)

	assert.Empty(t, applyErrs)
	require.Len(t, results, 1)
	assert.Equal(t, StatusPatched, results[0].Status)
	assert.Equal(t, "before\n", readFile(t, target))
}

func TestRunner_BackupKeepsOriginal(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, dir, "a.txt", "original\n")

	cfg := testConfig()
	cfg.Backup = true

	ops := []patch.Operation{{Path: target, Find: "original", Kind: patch.Replace, Content: "patched"}}

	_, applyErrs := New(cfg, false).Run(context.Background(), ops)

	assert.Empty(t, applyErrs)
	assert.Equal(t, "patched\n", readFile(t, target))
	assert.Equal(t, "original\n", readFile(t, target+config.DefaultBackupSuffix))
}

func TestRunner_SkipGlob(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, dir, "gen.txt", "generated\n")

	cfg := testConfig()
	cfg.Skip = []string{"**/gen.txt"}

	ops := []patch.Operation{{Path: target, Find: "generated", Kind: patch.Delete}}

	results, applyErrs := New(cfg, false).Run(context.Background(), ops)

	assert.Empty(t, applyErrs, "a skipped file is not an error")
	require.Len(t, results, 1)
	assert.Equal(t, StatusSkipped, results[0].Status)
	assert.Equal(t, "generated\n", readFile(t, target))
}

func TestRunner_Async(t *testing.T) {
	dir := t.TempDir()
	targets := make([]string, 4)
	var ops []patch.Operation
	for i, name := range []string{"a.txt", "b.txt", "c.txt", "d.txt"} {
		targets[i] = writeFile(t, dir, name, "old content\n")
		ops = append(ops, patch.Operation{Path: targets[i], Find: "old", Kind: patch.Replace, Content: "new"})
	}

	cfg := testConfig()
	cfg.Async = true

	results, applyErrs := New(cfg, false).Run(context.Background(), ops)

	assert.Empty(t, applyErrs)
	require.Len(t, results, 4)
	for i, target := range targets {
		assert.Equal(t, StatusPatched, results[i].Status)
		assert.Equal(t, target, results[i].Path, "async results keep grouping order")
		assert.Equal(t, "new content\n", readFile(t, target))
	}
}
