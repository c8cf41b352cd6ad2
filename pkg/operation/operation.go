// Package operation provides the filesystem-mutating half of a photosort
// run: creating date directories and copying planned files.
package operation

import (
	"context"

	"github.com/go-git/go-billy/v5"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/photosort/pkg/config"
	"github.com/walteh/photosort/pkg/log"
	"github.com/walteh/photosort/pkg/plan"
)

// 🎯 Operation is a single executable step of a run
type Operation interface {
	// Name returns a short identifier for logging
	Name() string
	// Execute runs the operation. Operations are idempotent and safe to
	// re-run; in dry-run mode they log intentions without mutating.
	Execute(ctx context.Context) error
}

// 🔧 Options contains the dependencies shared by all operations
type Options struct {
	// Config is the run configuration
	Config *config.Config
	// FS is the filesystem to mutate
	FS billy.Filesystem
	// Plan is the planner's output to execute
	Plan *plan.Plan
	// UserLogger receives user-facing progress lines
	UserLogger *log.UserLogger
}

// 📦 BaseOperation holds the validated shared dependencies
type BaseOperation struct {
	Config     *config.Config
	FS         billy.Filesystem
	Plan       *plan.Plan
	UserLogger *log.UserLogger
}

// 🏭 NewBaseOperation validates the options and builds the shared base
func NewBaseOperation(opts Options) (BaseOperation, error) {
	if opts.Config == nil {
		return BaseOperation{}, errors.Errorf("config is required")
	}
	if opts.FS == nil {
		return BaseOperation{}, errors.Errorf("filesystem is required")
	}
	if opts.Plan == nil {
		return BaseOperation{}, errors.Errorf("plan is required")
	}
	if opts.UserLogger == nil {
		return BaseOperation{}, errors.Errorf("user logger is required")
	}
	return BaseOperation{
		Config:     opts.Config,
		FS:         opts.FS,
		Plan:       opts.Plan,
		UserLogger: opts.UserLogger,
	}, nil
}
