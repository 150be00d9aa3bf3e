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

// Package config loads and validates the .patchrc configuration file.
package config

import (
	"context"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔧 PatchrcConfig controls how patch scripts are applied
type PatchrcConfig struct {
	// Backup writes a copy of the original content next to each patched file
	Backup bool `json:"backup,omitempty" yaml:"backup,omitempty" hcl:"backup,optional"`

	// BackupSuffix is appended to the target path for backup copies
	BackupSuffix string `json:"backup_suffix,omitempty" yaml:"backup_suffix,omitempty" hcl:"backup_suffix,optional"`

	// Skip lists doublestar globs; matching target paths are left untouched
	Skip []string `json:"skip,omitempty" yaml:"skip,omitempty" hcl:"skip,optional"`

	// Strict rejects FIND blocks with empty match text at parse time
	Strict bool `json:"strict,omitempty" yaml:"strict,omitempty" hcl:"strict,optional"`

	// Async applies independent files concurrently
	Async bool `json:"async,omitempty" yaml:"async,omitempty" hcl:"async,optional"`

	// LockTimeoutMs bounds how long to wait for a target's file lock
	LockTimeoutMs int `json:"lock_timeout_ms,omitempty" yaml:"lock_timeout_ms,omitempty" hcl:"lock_timeout_ms,optional"`

	// location is where this config was loaded from
	location string
}

const (
	// DefaultBackupSuffix is used when backup is on and no suffix is set
	DefaultBackupSuffix = ".orig"

	// DefaultLockTimeoutMs bounds lock waits when the config is silent
	DefaultLockTimeoutMs = 5000
)

// 🏭 Default returns the configuration used when no .patchrc file exists
func Default() *PatchrcConfig {
	return &PatchrcConfig{
		BackupSuffix:  DefaultBackupSuffix,
		LockTimeoutMs: DefaultLockTimeoutMs,
	}
}

// 📍 Location returns the path this config was loaded from, if any
func (c *PatchrcConfig) Location() string {
	return c.location
}

// ✅ Validate checks field consistency and fills in defaults
func Validate(ctx context.Context, cfg *PatchrcConfig) error {
	logger := zerolog.Ctx(ctx)

	if cfg.BackupSuffix == "" {
		cfg.BackupSuffix = DefaultBackupSuffix
	}
	if cfg.LockTimeoutMs == 0 {
		cfg.LockTimeoutMs = DefaultLockTimeoutMs
	}
	if cfg.LockTimeoutMs < 0 {
		return errors.Errorf("lock_timeout_ms must not be negative, got %d", cfg.LockTimeoutMs)
	}

	for _, pattern := range cfg.Skip {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid skip pattern %q", pattern)
		}
	}

	logger.Debug().
		Bool("backup", cfg.Backup).
		Bool("async", cfg.Async).
		Int("skip_patterns", len(cfg.Skip)).
		Msg("validated config")
	return nil
}
