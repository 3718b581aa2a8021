// Package app implements the application layer for arch-backup.
package app

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/cnwangjie/arch-backup/internal/adapters/detector"
	"github.com/cnwangjie/arch-backup/internal/adapters/fs"
	"github.com/cnwangjie/arch-backup/internal/adapters/git"
	"github.com/cnwangjie/arch-backup/internal/adapters/pacman"
	"github.com/cnwangjie/arch-backup/internal/adapters/report"
	"github.com/cnwangjie/arch-backup/internal/adapters/telemetry"
	"github.com/cnwangjie/arch-backup/internal/core/domain"
	"github.com/cnwangjie/arch-backup/internal/core/ports"
	"github.com/cnwangjie/arch-backup/internal/engine/collector"
	"github.com/cnwangjie/arch-backup/internal/engine/publisher"
	"go.trai.ch/zerr"
)

// Log formats accepted by RunOptions.LogFormat.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// LogSettings is implemented by loggers whose output can be tuned per run.
type LogSettings interface {
	SetJSON(enable bool)
	SetLevel(level slog.Level)
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	runner       ports.CommandRunner
	hasher       ports.Hasher
	tracer       ports.Tracer
	logger       ports.Logger

	stdout   io.Writer
	reporter ports.Reporter
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	runner ports.CommandRunner,
	hasher ports.Hasher,
	tracer ports.Tracer,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		runner:       runner,
		hasher:       hasher,
		tracer:       tracer,
		logger:       log,
		stdout:       os.Stdout,
	}
}

// WithStdout sets where the summary is printed.
func (a *App) WithStdout(w io.Writer) *App {
	a.stdout = w
	return a
}

// WithReporter replaces the console summary renderer.
func (a *App) WithReporter(r ports.Reporter) *App {
	a.reporter = r
	return a
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	ConfigPath    string
	BaseDir       string
	DryRun        bool
	SkipMalformed bool
	Timeout       time.Duration
	Trace         bool
	Verbose       bool
	LogFormat     string
	Color         string
}

// Run executes one operation and returns what it observed.
// The summary is returned whenever the inventory was collected, even if
// an artifact could not be written.
func (a *App) Run(ctx context.Context, op domain.Operation, opts RunOptions) (*domain.Summary, error) {
	if err := a.configureLogging(opts); err != nil {
		return nil, err
	}

	op, err := domain.ParseOperation(op.String())
	if err != nil {
		return nil, err
	}

	switch op {
	case domain.OperationBackup:
		return a.backup(ctx, op, opts)
	}
	return nil, zerr.With(zerr.Wrap(domain.ErrUnknownOperation, "operation has no handler"), "operation", op.String())
}

func (a *App) backup(ctx context.Context, op domain.Operation, opts RunOptions) (*domain.Summary, error) {
	// 1. Resolve configuration
	overrides := domain.ConfigOverrides{
		ConfigPath:     opts.ConfigPath,
		BaseDir:        opts.BaseDir,
		CommandTimeout: opts.Timeout,
	}
	if opts.SkipMalformed {
		overrides.ParsePolicy = domain.PolicySkip
	}

	cfg, err := a.configLoader.Load(overrides)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	a.logger.Debug("using base directory " + cfg.BaseDir)

	// 2. Initialize telemetry
	if opts.Trace {
		shutdown := telemetry.Install(telemetry.NewLogBridge(a.logger))
		defer func() {
			_ = shutdown(context.WithoutCancel(ctx))
		}()
	}

	ctx, span := a.tracer.Start(ctx, op.String())
	defer span.End()
	span.SetAttribute("dry_run", opts.DryRun)

	// 3. Collect and reconcile
	querier := pacman.NewQuerier(a.runner, cfg)
	inv, err := collector.New(querier, a.tracer, a.logger).Collect(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	snap := domain.Reconcile(inv)
	for _, pkg := range snap.Packages {
		a.logger.Debug(pkg.String())
	}
	summary := domain.NewSummary(op, inv, snap)
	summary.DryRun = opts.DryRun

	// 4. Write artifacts and diff them
	if !opts.DryRun {
		store := fs.NewStore(cfg.BaseDir, a.hasher)
		differ := git.NewDiffer(a.runner, cfg)
		summary.Reports = publisher.New(store, differ, a.tracer, a.logger).
			Publish(ctx, cfg.Artifacts(snap))
	}

	// 5. Report
	if err := a.reporterFor(opts).Report(summary); err != nil {
		return summary, zerr.Wrap(err, "failed to print summary")
	}

	if err := summary.Err(); err != nil {
		span.RecordError(err)
		return summary, err
	}
	return summary, nil
}

func (a *App) configureLogging(opts RunOptions) error {
	switch opts.LogFormat {
	case "", LogFormatText, LogFormatJSON:
	default:
		return zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "unsupported log format"), "log_format", opts.LogFormat)
	}

	ls, ok := a.logger.(LogSettings)
	if !ok {
		return nil
	}
	ls.SetJSON(opts.LogFormat == LogFormatJSON)
	if opts.Verbose {
		ls.SetLevel(slog.LevelDebug)
	}
	return nil
}

func (a *App) reporterFor(opts RunOptions) ports.Reporter {
	if a.reporter != nil {
		return a.reporter
	}

	f, _ := a.stdout.(*os.File)
	mode := detector.ResolveMode(detector.DetectEnvironment(f), opts.Color)
	return report.NewReporter(a.stdout, mode)
}
