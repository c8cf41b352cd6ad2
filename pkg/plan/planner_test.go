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

package plan_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/photosort/pkg/config"
	"github.com/walteh/photosort/pkg/log"
	"github.com/walteh/photosort/pkg/plan"
)

// 🧪 createTestEnv creates a test environment with a real source directory
func createTestEnv(t *testing.T, fileTypes []string) (context.Context, *config.Config, *plan.Planner) {
	t.Helper()

	logger := zerolog.New(zerolog.NewTestWriter(t))
	ctx := logger.WithContext(context.Background())

	tmpDir := t.TempDir()
	cfg := &config.Config{
		Source:      filepath.Join(tmpDir, "src"),
		Destination: filepath.Join(tmpDir, "dst"),
		FileTypes:   fileTypes,
	}
	require.NoError(t, os.MkdirAll(cfg.Source, 0o755))
	require.NoError(t, cfg.Validate())

	planner, err := plan.NewPlanner(plan.Options{
		Config:     cfg,
		FS:         osfs.New("/"),
		UserLogger: log.New(io.Discard, logger, false),
	})
	require.NoError(t, err)

	return ctx, cfg, planner
}

// 🧪 writeFileWithMtime creates a file and pins its modification time
func writeFileWithMtime(t *testing.T, dir, name string, mtime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("content of "+name), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}

// 🧪 TestBuildPlan covers the allowlist filter and the date bucketing
func TestBuildPlan(t *testing.T) {
	ctx, cfg, planner := createTestEnv(t, []string{"jpg", "arw"})

	mtime := time.Date(2022, 3, 1, 12, 30, 0, 0, time.Local)
	photo1 := writeFileWithMtime(t, cfg.Source, "photo1.jpg", mtime)
	photo2 := writeFileWithMtime(t, cfg.Source, "photo2.ARW", mtime)
	writeFileWithMtime(t, cfg.Source, "notes.txt", mtime)

	result, err := planner.Build(ctx)
	require.NoError(t, err)

	// Exactly the two allowlisted files, bucketed into one directory
	require.Len(t, result.Files, 2)
	assert.Equal(t, filepath.Join(cfg.Destination, "2022", "2022-03-01", "photo1.jpg"), result.Files[photo1])
	assert.Equal(t, filepath.Join(cfg.Destination, "2022", "2022-03-01", "photo2.ARW"), result.Files[photo2])

	require.Len(t, result.Directories, 1)
	require.Len(t, result.Directories[2022], 1)
	assert.Contains(t, result.Directories[2022], "2022-03-01")
}

// 🧪 TestBuildPlanSourceMissing verifies the run aborts before any mutation
func TestBuildPlanSourceMissing(t *testing.T) {
	ctx, cfg, planner := createTestEnv(t, nil)
	require.NoError(t, os.Remove(cfg.Source))

	result, err := planner.Build(ctx)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, plan.ErrSourceList))
}

// 🧪 TestBuildPlanSkipsSubdirectories verifies the scan is non-recursive
func TestBuildPlanSkipsSubdirectories(t *testing.T) {
	ctx, cfg, planner := createTestEnv(t, []string{"jpg"})

	mtime := time.Date(2023, 7, 14, 9, 0, 0, 0, time.Local)
	kept := writeFileWithMtime(t, cfg.Source, "keep.jpg", mtime)

	// A directory whose name would pass the extension filter
	require.NoError(t, os.MkdirAll(filepath.Join(cfg.Source, "album.jpg"), 0o755))
	// An allowlisted file inside a subdirectory must not be found
	require.NoError(t, os.MkdirAll(filepath.Join(cfg.Source, "nested"), 0o755))
	writeFileWithMtime(t, filepath.Join(cfg.Source, "nested"), "deep.jpg", mtime)

	result, err := planner.Build(ctx)
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	assert.Contains(t, result.Files, kept)
}

// 🧪 TestBuildPlanIgnorePatterns verifies glob-based skipping
func TestBuildPlanIgnorePatterns(t *testing.T) {
	ctx, cfg, planner := createTestEnv(t, []string{"jpg"})
	cfg.IgnorePatterns = []string{"IMG_*"}

	mtime := time.Date(2024, 1, 2, 8, 0, 0, 0, time.Local)
	writeFileWithMtime(t, cfg.Source, "IMG_0001.jpg", mtime)
	kept := writeFileWithMtime(t, cfg.Source, "holiday.jpg", mtime)

	result, err := planner.Build(ctx)
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	assert.Contains(t, result.Files, kept)
}

// 🧪 TestBuildPlanExtensions covers case folding and edge-case filenames
func TestBuildPlanExtensions(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		fileTypes   []string
		wantPlanned bool
	}{
		{
			name:        "uppercase_extension_matches",
			filename:    "photo.JPG",
			fileTypes:   []string{"jpg"},
			wantPlanned: true,
		},
		{
			name:        "uppercase_allowlist_matches",
			filename:    "photo.jpg",
			fileTypes:   []string{"JPG"},
			wantPlanned: true,
		},
		{
			name:        "default_allowlist_includes_dng",
			filename:    "raw.DNG",
			fileTypes:   nil,
			wantPlanned: true,
		},
		{
			name:        "no_extension_never_matches",
			filename:    "README",
			fileTypes:   []string{"jpg"},
			wantPlanned: false,
		},
		{
			name:        "trailing_dot_never_matches",
			filename:    "odd.",
			fileTypes:   []string{"jpg"},
			wantPlanned: false,
		},
		{
			name:        "last_extension_wins",
			filename:    "photo.jpg.bak",
			fileTypes:   []string{"jpg"},
			wantPlanned: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cfg, planner := createTestEnv(t, tt.fileTypes)
			writeFileWithMtime(t, cfg.Source, tt.filename, time.Date(2022, 6, 1, 10, 0, 0, 0, time.Local))

			result, err := planner.Build(ctx)
			require.NoError(t, err)

			if tt.wantPlanned {
				assert.Len(t, result.Files, 1)
			} else {
				assert.Empty(t, result.Files)
			}
		})
	}
}

// 🧪 TestBuildPlanMultipleDates verifies one bucket per calendar day
func TestBuildPlanMultipleDates(t *testing.T) {
	ctx, cfg, planner := createTestEnv(t, []string{"jpg"})

	writeFileWithMtime(t, cfg.Source, "a.jpg", time.Date(2021, 12, 31, 23, 0, 0, 0, time.Local))
	writeFileWithMtime(t, cfg.Source, "b.jpg", time.Date(2022, 1, 1, 1, 0, 0, 0, time.Local))
	writeFileWithMtime(t, cfg.Source, "c.jpg", time.Date(2022, 1, 1, 18, 0, 0, 0, time.Local))

	result, err := planner.Build(ctx)
	require.NoError(t, err)

	require.Len(t, result.Files, 3)
	buckets := result.SortedBuckets()
	require.Len(t, buckets, 2)
	assert.Equal(t, plan.DateBucket{Year: 2021, Date: "2021-12-31"}, buckets[0])
	assert.Equal(t, plan.DateBucket{Year: 2022, Date: "2022-01-01"}, buckets[1])
}

// 🧪 TestDateBucket verifies derivation and directory layout
func TestDateBucket(t *testing.T) {
	b := plan.NewDateBucket(time.Date(2022, 3, 1, 23, 59, 59, 0, time.Local))
	assert.Equal(t, 2022, b.Year)
	assert.Equal(t, "2022-03-01", b.Date)
	assert.Equal(t, filepath.Join("/dst", "2022", "2022-03-01"), b.Dir("/dst"))
}

// 🧪 TestNewPlannerValidation verifies required options
func TestNewPlannerValidation(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	ulog := log.New(io.Discard, logger, false)
	cfg := &config.Config{Source: "/src", Destination: "/dst"}

	tests := []struct {
		name string
		opts plan.Options
	}{
		{name: "missing_config", opts: plan.Options{FS: osfs.New("/"), UserLogger: ulog}},
		{name: "missing_fs", opts: plan.Options{Config: cfg, UserLogger: ulog}},
		{name: "missing_logger", opts: plan.Options{Config: cfg, FS: osfs.New("/")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := plan.NewPlanner(tt.opts)
			require.Error(t, err)
		})
	}
}
