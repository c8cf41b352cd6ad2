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

package operation

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ❌ ErrCopy means a source file could not be copied to its destination.
// The copy operation fails fast: files already copied stay in place, the
// rest are left for the next run.
var ErrCopy = errors.New("copying file")

// 🏭 NewCopyOperation creates the operation that copies every planned file
// to its destination
func NewCopyOperation(opts Options) (Operation, error) {
	base, err := NewBaseOperation(opts)
	if err != nil {
		return nil, errors.Errorf("creating copy operation: %w", err)
	}
	return &copyOperation{BaseOperation: base}, nil
}

// 📦 copyOperation executes the plan's file copies
type copyOperation struct {
	BaseOperation
}

func (op *copyOperation) Name() string { return "copy-files" }

// 🏃 Execute copies each planned file, skipping destinations that already
// exist. Existence alone gates the skip: no size or checksum comparison is
// performed, and an existing destination is never overwritten.
func (op *copyOperation) Execute(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)
	op.UserLogger.Verbosef("copying files to destination")

	copied := 0
	existing := 0

	for _, src := range op.Plan.SortedSources() {
		dst := op.Plan.Files[src]

		if _, err := op.FS.Stat(dst); err == nil {
			op.UserLogger.Verbosef("skipping %s, file already exists", dst)
			existing++
			continue
		}

		op.UserLogger.Verbosef("copying file from %s to %s", src, dst)
		if !op.Config.DryRun {
			if err := op.copyFile(src, dst); err != nil {
				return errors.Errorf("%w: %q -> %q: %w", ErrCopy, src, dst, err)
			}
		}
		copied++
	}

	logger.Debug().
		Int("copied", copied).
		Int("existing", existing).
		Msg("files copied")

	return nil
}

// 📄 copyFile copies the byte content of src to dst verbatim. Timestamps
// and other metadata are not preserved.
func (op *copyOperation) copyFile(src, dst string) error {
	in, err := op.FS.Open(src)
	if err != nil {
		return errors.Errorf("opening source: %w", err)
	}
	defer in.Close()

	out, err := op.FS.Create(dst)
	if err != nil {
		return errors.Errorf("creating destination: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.Errorf("writing content: %w", err)
	}

	if err := out.Close(); err != nil {
		return errors.Errorf("closing destination: %w", err)
	}
	return nil
}
