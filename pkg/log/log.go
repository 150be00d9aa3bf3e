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

package log

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent = 4  // spaces to indent file entries
	nameWidth  = 35 // Base width for target path
	opsWidth   = 14 // Width for the operation count column
)

// 🎯 FileReport represents one target file's outcome for display
type FileReport struct {
	Path       string // Target file path
	Operations int    // Operations in the file's batch
	IsPatched  bool   // Whether the file was rewritten
	IsSkipped  bool   // Whether a skip pattern excluded it
	IsDryRun   bool   // Whether this run made no writes
	Err        error  // Failure that left the file untouched
}

// 🎯 Logger handles console reporting alongside structured logging
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
	reports []FileReport
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 📝 formatFileReport formats one file line for display
func (l *Logger) formatFileReport(r FileReport) string {
	var symbol rune
	var symbolColor color.Attribute
	var status string
	switch {
	case r.Err != nil:
		symbol = '✗'
		symbolColor = color.FgRed
		status = r.Err.Error()
	case r.IsSkipped:
		symbol = '-'
		symbolColor = color.FgYellow
		status = "skipped"
	case r.IsDryRun:
		symbol = '•'
		symbolColor = color.FgCyan
		status = "would patch"
	default:
		symbol = '✓'
		symbolColor = color.FgGreen
		status = "patched"
	}

	ops := fmt.Sprintf("%d op(s)", r.Operations)
	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, r.Path),
		fmt.Sprintf("%-*s", opsWidth, ops),
		status)
}

// 📝 LogFileReport logs one target file's outcome
func (l *Logger) LogFileReport(r FileReport) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.reports = append(l.reports, r)
	fmt.Fprintln(l.console, l.formatFileReport(r))

	ev := l.zlog.Info()
	if r.Err != nil {
		ev = l.zlog.Error().Err(r.Err)
	}
	ev.
		Str("file", r.Path).
		Int("operations", r.Operations).
		Bool("is_patched", r.IsPatched).
		Bool("is_skipped", r.IsSkipped).
		Bool("is_dry_run", r.IsDryRun).
		Msg("file report")
}

// 📊 Summary prints totals for the run and clears the report list
func (l *Logger) Summary() {
	l.mu.Lock()
	defer l.mu.Unlock()

	var patched, skipped, failed int
	for _, r := range l.reports {
		switch {
		case r.Err != nil:
			failed++
		case r.IsSkipped:
			skipped++
		default:
			patched++
		}
	}

	fmt.Fprintf(l.console, "\n%s %d patched, %d skipped, %d failed\n",
		color.New(color.Bold).Sprint("patchrc"), patched, skipped, failed)
	l.zlog.Info().
		Int("patched", patched).
		Int("skipped", skipped).
		Int("failed", failed).
		Msg("run complete")
	l.reports = nil
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("patchrc")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}
