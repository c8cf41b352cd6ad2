package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/photosort/pkg/config"
	"github.com/walteh/photosort/pkg/log"
	"github.com/walteh/photosort/pkg/operation"
	"github.com/walteh/photosort/pkg/plan"
)

// defaultConfigFile is picked up from the working directory when --config
// is not given. Missing is fine.
const defaultConfigFile = ".photosort.yaml"

var (
	// Flags
	fromPath       string
	toPath         string
	fileTypes      []string
	ignorePatterns []string
	configFile     string
	verbose        bool
	dryRun         bool
)

// newRootCmd creates the root command
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "photosort",
		Short: "Organize photos into date-based folders",
		Long: `photosort copies image files from a flat source directory into a
destination tree organized as destination/year/year-month-day, keyed on
each file's last-modified timestamp. Re-running is safe: existing
directories and files are skipped, never overwritten.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	cmd.Flags().StringVarP(&fromPath, "from", "f", "", "source directory to organize")
	cmd.Flags().StringVarP(&toPath, "to", "t", "", "destination root for organized photos")
	cmd.Flags().StringSliceVar(&fileTypes, "filetypes", nil, "allowlist of file extensions to process (default jpg,dng,arw)")
	cmd.Flags().StringSliceVar(&ignorePatterns, "ignore", nil, "glob patterns for filenames to skip")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (YAML or HCL)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "emit timestamped progress lines")
	cmd.Flags().BoolVar(&dryRun, "dryrun", false, "compute and log the plan without touching the filesystem")

	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

// run executes one full plan-then-execute pass
func run(cmd *cobra.Command, args []string) error {
	// Set up logging
	logLevel := zerolog.InfoLevel
	if verbose {
		logLevel = zerolog.DebugLevel
	}
	logger := zerolog.New(os.Stderr).Level(logLevel).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	// Build config from optional file plus flags
	cfg, err := buildConfig(ctx, cmd.Flags())
	if err != nil {
		return err
	}

	ulog := log.New(os.Stdout, logger, cfg.Verbose)
	ulog.Verbosef("running photosort with configuration %s", cfg)

	fsys := osfs.New("/")

	// Plan
	planner, err := plan.NewPlanner(plan.Options{
		Config:     cfg,
		FS:         fsys,
		UserLogger: ulog,
	})
	if err != nil {
		return errors.Errorf("creating planner: %w", err)
	}

	result, err := planner.Build(ctx)
	if err != nil {
		return errors.Errorf("building plan: %w", err)
	}

	// Execute
	opts := operation.Options{
		Config:     cfg,
		FS:         fsys,
		Plan:       result,
		UserLogger: ulog,
	}

	mkdirOp, err := operation.NewMkdirOperation(opts)
	if err != nil {
		return err
	}
	copyOp, err := operation.NewCopyOperation(opts)
	if err != nil {
		return err
	}

	runner := operation.NewRunner(&logger)
	if err := runner.Run(ctx, mkdirOp, copyOp); err != nil {
		return err
	}

	if cfg.DryRun {
		ulog.Successf("dry run complete, no files were modified")
	} else {
		ulog.Successf("organized %d files into %s", len(result.Files), cfg.Destination)
	}
	return nil
}

// buildConfig layers command-line flags over an optional config file
func buildConfig(ctx context.Context, flags *pflag.FlagSet) (*config.Config, error) {
	cfg := &config.Config{}

	path := configFile
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	}
	if path != "" {
		loaded, err := config.Load(ctx, path)
		if err != nil {
			return nil, errors.Errorf("loading config file: %w", err)
		}
		cfg = loaded
	}

	// Flags win over file values
	if flags.Changed("from") {
		cfg.Source = fromPath
	}
	if flags.Changed("to") {
		cfg.Destination = toPath
	}
	if flags.Changed("filetypes") {
		cfg.FileTypes = fileTypes
	}
	if flags.Changed("ignore") {
		cfg.IgnorePatterns = ignorePatterns
	}
	if flags.Changed("verbose") {
		cfg.Verbose = verbose
	}
	if flags.Changed("dryrun") {
		cfg.DryRun = dryRun
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	// The osfs filesystem is rooted at /, so both paths must be absolute
	absSource, err := filepath.Abs(cfg.Source)
	if err != nil {
		return nil, errors.Errorf("getting absolute source path: %w", err)
	}
	cfg.Source = absSource

	absDestination, err := filepath.Abs(cfg.Destination)
	if err != nil {
		return nil, errors.Errorf("getting absolute destination path: %w", err)
	}
	cfg.Destination = absDestination

	return cfg, nil
}
