// Package config provides the configuration loader for arch-backup.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/cnwangjie/arch-backup/internal/core/domain"
	"github.com/cnwangjie/arch-backup/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using an optional YAML file.
type Loader struct {
	Logger ports.Logger
	FS     FileSystem

	// Executable returns the path of the running binary. The default base
	// directory is the directory containing it.
	Executable func() (string, error)
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{
		Logger:     logger,
		FS:         NewOSFS(),
		Executable: os.Executable,
	}
}

// Load merges defaults, the config file and the overrides, in increasing
// order of precedence, and validates the result.
func (l *Loader) Load(overrides domain.ConfigOverrides) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	baseDir := overrides.BaseDir
	if baseDir == "" {
		dir, err := l.executableDir()
		if err != nil {
			return domain.Config{}, err
		}
		baseDir = dir
	}
	baseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return domain.Config{}, zerr.With(zerr.Wrap(domain.ErrBaseDirUnresolved, err.Error()), "base_dir", baseDir)
	}
	cfg.BaseDir = baseDir

	file, path, err := l.readFile(overrides.ConfigPath, baseDir)
	if err != nil {
		return domain.Config{}, err
	}
	if file != nil {
		if err := applyFile(&cfg, file, filepath.Dir(path), overrides.BaseDir != ""); err != nil {
			return domain.Config{}, zerr.With(err, "file", path)
		}
		l.Logger.Debug("loaded configuration from " + path)
	}

	if overrides.CommandTimeout > 0 {
		cfg.CommandTimeout = overrides.CommandTimeout
	}
	if overrides.ParsePolicy != "" {
		cfg.ParsePolicy = overrides.ParsePolicy
	}

	if err := cfg.Validate(); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

func (l *Loader) executableDir() (string, error) {
	exe, err := l.Executable()
	if err != nil {
		return "", zerr.Wrap(errors.Join(domain.ErrBaseDirUnresolved, err), "cannot locate executable")
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// readFile returns the parsed config file, or nil when no explicit path was
// given and the base directory has no config file.
func (l *Loader) readFile(explicit, baseDir string) (*File, string, error) {
	path := explicit
	if path == "" {
		path = filepath.Join(baseDir, domain.ConfigFileName)
		if _, err := l.FS.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return nil, "", nil
		}
	}

	data, err := l.FS.ReadFile(path)
	if err != nil {
		return nil, "", zerr.With(zerr.Wrap(errors.Join(domain.ErrConfigReadFailed, err), "cannot read config"), "file", path)
	}

	file, err := decode(data)
	if err != nil {
		return nil, "", zerr.With(err, "file", path)
	}
	return file, path, nil
}

// decode parses the YAML document, rejecting unknown keys. An empty document
// is an empty configuration.
func decode(data []byte) (*File, error) {
	var file File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, zerr.Wrap(errors.Join(domain.ErrConfigParseFailed, err), "invalid config")
	}
	return &file, nil
}

func applyFile(cfg *domain.Config, file *File, fileDir string, baseDirOverridden bool) error {
	if file.Version != "" && file.Version != SchemaVersion {
		err := zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "unsupported config version"), "field", "version")
		err = zerr.With(err, "value", file.Version)
		return zerr.With(err, "supported", SchemaVersion)
	}
	if file.BaseDir != "" && !baseDirOverridden {
		dir := file.BaseDir
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(fileDir, dir)
		}
		cfg.BaseDir = filepath.Clean(dir)
	}
	if file.GroupListFile != "" {
		cfg.GroupListFile = file.GroupListFile
	}
	if file.PackageListFile != "" {
		cfg.PackageListFile = file.PackageListFile
	}

	if pm := file.PackageManager; pm != nil {
		if pm.Binary != "" {
			cfg.PackageManager.Binary = pm.Binary
		}
		if pm.GroupArgs != nil {
			cfg.PackageManager.GroupArgs = pm.GroupArgs
		}
		if pm.ForeignArgs != nil {
			cfg.PackageManager.ForeignArgs = pm.ForeignArgs
		}
		if pm.NativeArgs != nil {
			cfg.PackageManager.NativeArgs = pm.NativeArgs
		}
	}
	if file.VCS != nil && file.VCS.Binary != "" {
		cfg.VCS.Binary = file.VCS.Binary
	}

	if file.CommandTimeout != "" {
		d, err := time.ParseDuration(file.CommandTimeout)
		if err != nil {
			return zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "command_timeout is not a duration"), "value", file.CommandTimeout)
		}
		cfg.CommandTimeout = d
	}
	if file.MaxOutputBytes != nil {
		cfg.MaxOutputBytes = *file.MaxOutputBytes
	}
	if file.ParsePolicy != "" {
		cfg.ParsePolicy = domain.ParsePolicy(file.ParsePolicy)
	}
	return nil
}
