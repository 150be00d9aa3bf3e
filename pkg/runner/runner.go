// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package runner maps parsed patch operations onto files on disk.
package runner

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gofrs/flock"
	"github.com/rs/zerolog"
	"github.com/walteh/patchrc/pkg/config"
	"github.com/walteh/patchrc/pkg/patch"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// lockPollInterval is how often a blocked run re-checks the target's lock.
const lockPollInterval = 10 * time.Millisecond

// 🎯 FileStatus describes what happened to one target file
type FileStatus int

const (
	// StatusPatched means the file was rewritten (or would be, in dry-run)
	StatusPatched FileStatus = iota
	// StatusSkipped means a skip glob matched and the file was not touched
	StatusSkipped
	// StatusFailed means an apply error left the file untouched
	StatusFailed
)

// 📦 FileResult summarizes the outcome for one target file
type FileResult struct {
	Path       string
	Status     FileStatus
	Operations int
	Err        *patch.ApplyError
}

// 🏃 Runner applies per-file operation batches to the filesystem
type Runner struct {
	cfg    *config.PatchrcConfig
	dryRun bool
}

// 🏗️ New creates a runner for the given configuration
func New(cfg *config.PatchrcConfig, dryRun bool) *Runner {
	return &Runner{cfg: cfg, dryRun: dryRun}
}

// 🏃 Run groups the operations per file and applies each file's batch. Files
// are independent of each other, so async mode patches them concurrently;
// within one file the batch stays strictly ordered. The returned errors are
// everything that went wrong; a file with any error is left byte-for-byte as
// it was.
func (r *Runner) Run(ctx context.Context, ops []patch.Operation) ([]FileResult, []patch.ApplyError) {
	grouped, paths := patch.Group(ops)

	if !r.cfg.Async {
		var results []FileResult
		var applyErrs []patch.ApplyError
		for _, path := range paths {
			res := r.runFile(ctx, path, grouped[path])
			results = append(results, res)
			if res.Err != nil {
				applyErrs = append(applyErrs, *res.Err)
			}
		}
		return results, applyErrs
	}

	// Async: one goroutine per file, results slotted by index so the report
	// order stays the grouping order.
	results := make([]FileResult, len(paths))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			res := r.runFile(gctx, path, grouped[path])
			mu.Lock()
			results[i] = res
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // runFile reports failures through results, never as errors

	var applyErrs []patch.ApplyError
	for _, res := range results {
		if res.Err != nil {
			applyErrs = append(applyErrs, *res.Err)
		}
	}
	return results, applyErrs
}

// 🔧 runFile applies one file's batch: skip-glob check, lock, read, apply,
// optional backup, write. Any failure leaves the file untouched.
func (r *Runner) runFile(ctx context.Context, path string, ops []patch.Operation) FileResult {
	logger := zerolog.Ctx(ctx).With().Str("path", path).Logger()

	if r.skipped(path) {
		logger.Debug().Msg("target matches a skip pattern, leaving untouched")
		return FileResult{Path: path, Status: StatusSkipped, Operations: len(ops)}
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return r.fail(path, len(ops), "File not found: "+path)
		}
		return r.fail(path, len(ops), err.Error())
	}

	unlock, err := r.lock(ctx, path)
	if err != nil {
		return r.fail(path, len(ops), err.Error())
	}
	defer unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return r.fail(path, len(ops), err.Error())
	}

	newContent, applyErrs := patch.ApplyAll(string(data), ops)
	if len(applyErrs) > 0 {
		logger.Debug().Int("operation", applyErrs[0].OperationIndex).Msg("batch failed, discarding edits")
		res := FileResult{Path: path, Status: StatusFailed, Operations: len(ops)}
		res.Err = &applyErrs[0]
		return res
	}

	if r.dryRun {
		logger.Debug().Msg("dry run, not writing")
		return FileResult{Path: path, Status: StatusPatched, Operations: len(ops)}
	}

	if r.cfg.Backup {
		if err := os.WriteFile(path+r.cfg.BackupSuffix, data, 0o644); err != nil {
			return r.fail(path, len(ops), errors.Errorf("writing backup: %w", err).Error())
		}
	}

	if err := os.WriteFile(path, []byte(newContent), 0o644); err != nil {
		return r.fail(path, len(ops), err.Error())
	}

	logger.Debug().Int("operations", len(ops)).Msg("patched")
	return FileResult{Path: path, Status: StatusPatched, Operations: len(ops)}
}

// skipped reports whether a target path matches any configured skip glob.
func (r *Runner) skipped(path string) bool {
	for _, pattern := range r.cfg.Skip {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

// lock takes an OS-level lock on <path>.lock so two runs cannot interleave a
// read-modify-write on the same target.
func (r *Runner) lock(ctx context.Context, path string) (func(), error) {
	timeout := time.Duration(r.cfg.LockTimeoutMs) * time.Millisecond
	lockCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	fileLock := flock.New(path + ".lock")
	locked, err := fileLock.TryLockContext(lockCtx, lockPollInterval)
	if err != nil {
		return nil, errors.Errorf("acquiring lock for %s: %w", path, err)
	}
	if !locked {
		return nil, errors.Errorf("timeout acquiring lock for %s", path)
	}
	return func() {
		_ = fileLock.Unlock()
		_ = os.Remove(path + ".lock")
	}, nil
}

func (r *Runner) fail(path string, opCount int, message string) FileResult {
	return FileResult{
		Path:       path,
		Status:     StatusFailed,
		Operations: opCount,
		Err:        &patch.ApplyError{Path: path, Message: message, OperationIndex: -1},
	}
}
