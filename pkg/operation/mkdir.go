package operation

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ❌ ErrMkdir means a destination directory could not be created
var ErrMkdir = errors.New("creating directory")

// 🏭 NewMkdirOperation creates the operation that ensures every planned
// date directory exists under the destination root
func NewMkdirOperation(opts Options) (Operation, error) {
	base, err := NewBaseOperation(opts)
	if err != nil {
		return nil, errors.Errorf("creating mkdir operation: %w", err)
	}
	return &mkdirOperation{BaseOperation: base}, nil
}

// 📁 mkdirOperation materializes the plan's directory set
type mkdirOperation struct {
	BaseOperation
}

func (op *mkdirOperation) Name() string { return "create-directories" }

// 🏃 Execute creates each planned directory, skipping ones that already
// exist. MkdirAll also creates missing parents and treats a directory that
// appeared between the existence check and creation as success.
func (op *mkdirOperation) Execute(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)
	op.UserLogger.Verbosef("creating new folders")

	created := 0
	existing := 0

	for _, bucket := range op.Plan.SortedBuckets() {
		path := bucket.Dir(op.Config.Destination)

		if _, err := op.FS.Stat(path); err == nil {
			op.UserLogger.Verbosef("skipping path %s that already exists", path)
			existing++
			continue
		}

		op.UserLogger.Verbosef("creating path %s", path)
		if !op.Config.DryRun {
			if err := op.FS.MkdirAll(path, 0o755); err != nil {
				return errors.Errorf("%w: %q: %w", ErrMkdir, path, err)
			}
		}
		created++
	}

	logger.Debug().
		Int("created", created).
		Int("existing", existing).
		Msg("directories ensured")

	return nil
}
