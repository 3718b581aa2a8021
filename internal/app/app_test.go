package app_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cnwangjie/arch-backup/internal/adapters/fs"
	"github.com/cnwangjie/arch-backup/internal/adapters/logger"
	"github.com/cnwangjie/arch-backup/internal/adapters/telemetry"
	"github.com/cnwangjie/arch-backup/internal/app"
	"github.com/cnwangjie/arch-backup/internal/core/domain"
	"github.com/cnwangjie/arch-backup/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

const (
	groupOutput = "base base\nbase bash\n"
	aurOutput   = "Name            : yay\nVersion         : 12.3.5-1\n\n"
	repoOutput  = "Name            : bash\nVersion         : 5.2.026-2\n\n" +
		"Name            : vim\nVersion         : 9.1.0-1\n\n"
)

// fakeRunner answers commands by their rendered command line.
type fakeRunner struct {
	t       *testing.T
	outputs map[string]string
	errs    map[string]error
}

func (f *fakeRunner) run(_ context.Context, cmd domain.Command) ([]byte, error) {
	line := cmd.String()
	if err, ok := f.errs[line]; ok {
		return nil, err
	}
	out, ok := f.outputs[line]
	if !ok {
		f.t.Errorf("unexpected command %q", line)
		return nil, zerr.Wrap(domain.ErrCommandFailed, "unexpected command")
	}
	return []byte(out), nil
}

func defaultOutputs() map[string]string {
	return map[string]string{
		"pacman -Qge":                     groupOutput,
		"pacman -Qeim":                    aurOutput,
		"pacman -Qein":                    repoOutput,
		"git diff --numstat -- grouplist": "",
		"git diff --numstat -- pkglist":   "2\t0\tpkglist\n",
	}
}

type fixture struct {
	app    *app.App
	loader *mocks.MockConfigLoader
	logger *mocks.MockLogger
	runner *fakeRunner
	stdout *bytes.Buffer
	cfg    domain.Config

	mu    sync.Mutex
	debug []string
}

func (f *fixture) recordDebug(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.debug = append(f.debug, msg)
}

func (f *fixture) debugLines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.debug...)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	cfg := domain.DefaultConfig()
	cfg.BaseDir = t.TempDir()

	f := &fixture{
		loader: mocks.NewMockConfigLoader(ctrl),
		logger: mocks.NewMockLogger(ctrl),
		runner: &fakeRunner{t: t, outputs: defaultOutputs(), errs: map[string]error{}},
		stdout: new(bytes.Buffer),
		cfg:    cfg,
	}

	runner := mocks.NewMockCommandRunner(ctrl)
	runner.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(f.runner.run).AnyTimes()

	f.logger.EXPECT().Debug(gomock.Any()).Do(f.recordDebug).AnyTimes()
	f.loader.EXPECT().Load(gomock.Any()).Return(cfg, nil).AnyTimes()

	f.app = app.New(f.loader, runner, fs.NewHasher(), telemetry.NewNoOpTracer(), f.logger).
		WithStdout(f.stdout)
	return f
}

func readArtifact(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(data)
}

func TestApp_Backup(t *testing.T) {
	f := newFixture(t)

	summary, err := f.app.Run(context.Background(), domain.OperationBackup, app.RunOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.AURCount)
	assert.Equal(t, 2, summary.RepoCount)
	assert.Equal(t, 1, summary.GroupCount)
	assert.Equal(t, 2, summary.UngroupedCount)

	assert.Equal(t, "base\n", readArtifact(t, f.cfg.BaseDir, "grouplist"))
	assert.Equal(t, "yay\nvim\n", readArtifact(t, f.cfg.BaseDir, "pkglist"))

	require.Len(t, summary.Reports, 2)
	assert.Equal(t, domain.DiffStat{}, summary.Reports[0].Diff)
	assert.Equal(t, domain.DiffStat{Added: 2}, summary.Reports[1].Diff)

	out := f.stdout.String()
	assert.Contains(t, out, "packages installed:\n 1 from AUR\n 2 from official repo\n 1 groups\n 2 explicitly installed\n")
	assert.Contains(t, out, "write grouplist ok 0 new and 0 removed\n")
	assert.Contains(t, out, "write pkglist ok 2 new and 0 removed\n")
}

func TestApp_LogsPackageMembership(t *testing.T) {
	f := newFixture(t)

	_, err := f.app.Run(context.Background(), domain.OperationBackup, app.RunOptions{DryRun: true})
	require.NoError(t, err)

	debug := f.debugLines()
	assert.Contains(t, debug, "yay (aur) ungrouped")
	assert.Contains(t, debug, "bash (repo) in base")
	assert.Contains(t, debug, "vim (repo) ungrouped")
}

func TestApp_DefaultOperation(t *testing.T) {
	f := newFixture(t)

	summary, err := f.app.Run(context.Background(), "", app.RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, domain.OperationBackup, summary.Operation)
}

func TestApp_DryRun(t *testing.T) {
	f := newFixture(t)
	f.runner.outputs = map[string]string{
		"pacman -Qge":  groupOutput,
		"pacman -Qeim": aurOutput,
		"pacman -Qein": repoOutput,
	}

	summary, err := f.app.Run(context.Background(), domain.OperationBackup, app.RunOptions{DryRun: true})
	require.NoError(t, err)

	assert.True(t, summary.DryRun)
	assert.Empty(t, summary.Reports)
	assert.Equal(t, []string{"yay", "vim"}, summary.Snapshot.UngroupedExplicit)

	entries, err := os.ReadDir(f.cfg.BaseDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "dry run writes nothing")
	assert.Contains(t, f.stdout.String(), "dry run, no artifacts written")
}

func TestApp_QueryFailureAborts(t *testing.T) {
	f := newFixture(t)
	f.runner.errs["pacman -Qein"] = zerr.With(
		zerr.With(zerr.Wrap(domain.ErrCommandFailed, "pacman failed"), "exit_code", 2),
		"stderr", "error: could not lock database",
	)

	summary, err := f.app.Run(context.Background(), domain.OperationBackup, app.RunOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCommandFailed)
	assert.Nil(t, summary)

	entries, err := os.ReadDir(f.cfg.BaseDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no snapshot is written")
	assert.Empty(t, f.stdout.String())
}

func TestApp_DiffUnavailableIsAWarning(t *testing.T) {
	f := newFixture(t)
	f.runner.errs["git diff --numstat -- grouplist"] = zerr.Wrap(domain.ErrCommandFailed, "git failed")
	f.logger.EXPECT().Warn(gomock.Cond(func(msg string) bool {
		return strings.HasPrefix(msg, "grouplist: ")
	}))

	summary, err := f.app.Run(context.Background(), domain.OperationBackup, app.RunOptions{})
	require.NoError(t, err)

	assert.ErrorIs(t, summary.Reports[0].DiffErr, domain.ErrDiffUnavailable)
	assert.Equal(t, "base\n", readArtifact(t, f.cfg.BaseDir, "grouplist"))
	assert.Contains(t, f.stdout.String(), "write grouplist ok, diff unavailable\n")
	assert.Contains(t, f.stdout.String(), "write pkglist ok 2 new and 0 removed\n")
}

func TestApp_WriteFailureIsIsolated(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.Mkdir(filepath.Join(f.cfg.BaseDir, "pkglist"), 0o750))

	summary, err := f.app.Run(context.Background(), domain.OperationBackup, app.RunOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrArtifactsFailed)
	assert.ErrorIs(t, err, domain.ErrArtifactWriteFailed)

	require.NotNil(t, summary)
	assert.True(t, summary.Reports[1].Failed())
	assert.Equal(t, "base\n", readArtifact(t, f.cfg.BaseDir, "grouplist"))
	assert.Contains(t, f.stdout.String(), "write pkglist failed\n")
}

func TestApp_SkipMalformed(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	log := mocks.NewMockLogger(ctrl)
	runner := mocks.NewMockCommandRunner(ctrl)

	cfg := domain.DefaultConfig()
	cfg.BaseDir = t.TempDir()
	cfg.ParsePolicy = domain.PolicySkip

	loader.EXPECT().Load(domain.ConfigOverrides{ParsePolicy: domain.PolicySkip}).Return(cfg, nil)
	fr := &fakeRunner{t: t, outputs: defaultOutputs()}
	fr.outputs["pacman -Qge"] = "base base\nbroken\nbase bash\n"
	runner.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(fr.run).AnyTimes()
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Warn("skipped 1 malformed records")

	var stdout bytes.Buffer
	a := app.New(loader, runner, fs.NewHasher(), telemetry.NewNoOpTracer(), log).WithStdout(&stdout)

	summary, err := a.Run(context.Background(), domain.OperationBackup, app.RunOptions{SkipMalformed: true})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.SkippedCount)
	assert.Contains(t, stdout.String(), "1 malformed records skipped")
}

func TestApp_PassesOverridesToLoader(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	log := mocks.NewMockLogger(ctrl)

	loadErr := zerr.Wrap(domain.ErrConfigParseFailed, "yaml: line 3")
	loader.EXPECT().Load(domain.ConfigOverrides{
		ConfigPath:     "/etc/arch-backup.yaml",
		BaseDir:        "/srv/backup",
		CommandTimeout: 5 * time.Second,
	}).Return(domain.Config{}, loadErr)

	a := app.New(loader, mocks.NewMockCommandRunner(ctrl), fs.NewHasher(), telemetry.NewNoOpTracer(), log)

	_, err := a.Run(context.Background(), domain.OperationBackup, app.RunOptions{
		ConfigPath: "/etc/arch-backup.yaml",
		BaseDir:    "/srv/backup",
		Timeout:    5 * time.Second,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigParseFailed)
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestApp_UnknownOperation(t *testing.T) {
	ctrl := gomock.NewController(t)
	a := app.New(mocks.NewMockConfigLoader(ctrl), mocks.NewMockCommandRunner(ctrl),
		fs.NewHasher(), telemetry.NewNoOpTracer(), mocks.NewMockLogger(ctrl))

	_, err := a.Run(context.Background(), domain.Operation("restore"), app.RunOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownOperation)
}

func TestApp_InvalidLogFormat(t *testing.T) {
	ctrl := gomock.NewController(t)
	a := app.New(mocks.NewMockConfigLoader(ctrl), mocks.NewMockCommandRunner(ctrl),
		fs.NewHasher(), telemetry.NewNoOpTracer(), mocks.NewMockLogger(ctrl))

	_, err := a.Run(context.Background(), domain.OperationBackup, app.RunOptions{LogFormat: "xml"})
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestApp_UsesReporter(t *testing.T) {
	f := newFixture(t)
	reporter := mocks.NewMockReporter(gomock.NewController(t))
	reporter.EXPECT().Report(gomock.Any()).DoAndReturn(func(s *domain.Summary) error {
		assert.Len(t, s.Reports, 2)
		return nil
	})
	f.app.WithReporter(reporter)

	_, err := f.app.Run(context.Background(), domain.OperationBackup, app.RunOptions{})
	require.NoError(t, err)
	assert.Empty(t, f.stdout.String())
}

func TestApp_VerboseJSONLogging(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	runner := mocks.NewMockCommandRunner(ctrl)

	cfg := domain.DefaultConfig()
	cfg.BaseDir = t.TempDir()
	loader.EXPECT().Load(gomock.Any()).Return(cfg, nil)
	fr := &fakeRunner{t: t, outputs: defaultOutputs()}
	runner.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(fr.run).AnyTimes()

	var logs bytes.Buffer
	log := logger.New()
	log.SetOutput(&logs)

	a := app.New(loader, runner, fs.NewHasher(), telemetry.NewNoOpTracer(), log).WithStdout(new(bytes.Buffer))
	_, err := a.Run(context.Background(), domain.OperationBackup, app.RunOptions{
		Verbose:   true,
		LogFormat: app.LogFormatJSON,
	})
	require.NoError(t, err)

	assert.Contains(t, logs.String(), `"level":"DEBUG"`)
	assert.Contains(t, logs.String(), "using base directory "+cfg.BaseDir)
}

func TestApp_Trace(t *testing.T) {
	f := newFixture(t)
	f.app = app.New(f.loader, mocksRunner(t, f.runner), fs.NewHasher(),
		telemetry.NewOTelTracer(telemetry.InstrumentationName), f.logger).WithStdout(f.stdout)

	f.logger.EXPECT().Info(gomock.Cond(func(msg string) bool {
		return strings.HasPrefix(msg, "trace ")
	})).MinTimes(1)

	_, err := f.app.Run(context.Background(), domain.OperationBackup, app.RunOptions{Trace: true})
	require.NoError(t, err)
}

func mocksRunner(t *testing.T, fr *fakeRunner) *mocks.MockCommandRunner {
	t.Helper()
	runner := mocks.NewMockCommandRunner(gomock.NewController(t))
	runner.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(fr.run).AnyTimes()
	return runner
}
