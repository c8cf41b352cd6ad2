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

package plan

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-billy/v5"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/photosort/pkg/config"
	"github.com/walteh/photosort/pkg/log"
)

var (
	// ❌ ErrSourceList means the source directory could not be listed
	ErrSourceList = errors.New("listing source directory")

	// ❌ ErrStat means a file's timestamp could not be read. A single
	// unreadable file is fatal to the whole run.
	ErrStat = errors.New("reading file timestamp")
)

// 🔧 Options contains the planner's dependencies
type Options struct {
	// Config is the run configuration
	Config *config.Config
	// FS is the filesystem to scan
	FS billy.Filesystem
	// UserLogger receives user-facing progress lines
	UserLogger *log.UserLogger
}

// 🗺️ Planner scans the source directory and produces a Plan
type Planner struct {
	cfg  *config.Config
	fs   billy.Filesystem
	ulog *log.UserLogger
}

// 🏭 NewPlanner creates a new planner with the given options
func NewPlanner(opts Options) (*Planner, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if opts.FS == nil {
		return nil, errors.Errorf("filesystem is required")
	}
	if opts.UserLogger == nil {
		return nil, errors.Errorf("user logger is required")
	}
	return &Planner{
		cfg:  opts.Config,
		fs:   opts.FS,
		ulog: opts.UserLogger,
	}, nil
}

// 🏃 Build lists the source directory and produces the plan. The scan is
// non-recursive: subdirectory entries are skipped. No filesystem mutation
// happens here.
func (p *Planner) Build(ctx context.Context) (*Plan, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("source", p.cfg.Source).Msg("building plan")

	p.ulog.Verbosef("processing files to determine what to copy")

	entries, err := p.fs.ReadDir(p.cfg.Source)
	if err != nil {
		return nil, errors.Errorf("%w: %q: %w", ErrSourceList, p.cfg.Source, err)
	}

	allowed := p.cfg.AllowedTypes()
	result := NewPlan()
	skipped := 0

	for _, entry := range entries {
		name := entry.Name()
		srcPath := filepath.Join(p.cfg.Source, name)

		if entry.IsDir() {
			continue
		}

		if p.shouldIgnore(name) {
			p.ulog.Verbosef("skipping ignored file %s", srcPath)
			skipped++
			continue
		}

		if !allowed[extensionOf(name)] {
			p.ulog.Verbosef("skipping non-allowlisted file %s", srcPath)
			skipped++
			continue
		}

		p.ulog.Verbosef("processing %s", name)

		// Re-stat rather than trusting the directory listing, so an entry
		// that disappeared mid-scan surfaces as an error instead of a
		// stale timestamp.
		info, err := p.fs.Stat(srcPath)
		if err != nil {
			return nil, errors.Errorf("%w: %q: %w", ErrStat, srcPath, err)
		}

		bucket := NewDateBucket(info.ModTime())
		result.Add(bucket, srcPath, filepath.Join(bucket.Dir(p.cfg.Destination), name))
	}

	logger.Debug().
		Int("planned", len(result.Files)).
		Int("skipped", skipped).
		Msg("plan built")
	p.ulog.Verbosef("planned %d copies across %d folders, skipped %d files",
		len(result.Files), len(result.SortedBuckets()), skipped)

	return result, nil
}

// 🔍 shouldIgnore checks the filename against the configured glob patterns
func (p *Planner) shouldIgnore(name string) bool {
	for _, pattern := range p.cfg.IgnorePatterns {
		matched, err := doublestar.Match(pattern, name)
		if err != nil {
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

// extensionOf returns the lowercased extension without the leading dot, or
// "" when the filename has none.
func extensionOf(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}
