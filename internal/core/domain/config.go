package domain

import (
	"time"

	"go.trai.ch/zerr"
)

const (
	// DefaultCommandTimeout bounds every subprocess invocation.
	DefaultCommandTimeout = 30 * time.Second

	// DefaultMaxOutputBytes caps the captured stdout of one subprocess.
	DefaultMaxOutputBytes int64 = 2 << 20
)

// PackageManagerConfig describes how to query the package database.
type PackageManagerConfig struct {
	Binary      string
	GroupArgs   []string
	ForeignArgs []string
	NativeArgs  []string
}

// ExplicitArgs returns the arguments of the explicit-install query for a provenance.
func (c PackageManagerConfig) ExplicitArgs(p Provenance) []string {
	switch p {
	case ProvenanceAUR:
		return c.ForeignArgs
	case ProvenanceRepo:
		return c.NativeArgs
	default:
		return nil
	}
}

// VCSConfig describes how to invoke the version-control diff.
type VCSConfig struct {
	Binary string
}

// Config is the fully resolved configuration of one run.
type Config struct {
	// BaseDir is the directory artifacts are written to and diffs are run in.
	BaseDir string

	GroupListFile   string
	PackageListFile string

	PackageManager PackageManagerConfig
	VCS            VCSConfig

	CommandTimeout time.Duration
	MaxOutputBytes int64
	ParsePolicy    ParsePolicy
}

// DefaultConfig returns the configuration used when nothing is overridden.
// BaseDir is left empty; it is resolved by the config loader.
func DefaultConfig() Config {
	return Config{
		GroupListFile:   DefaultGroupListFile,
		PackageListFile: DefaultPackageListFile,
		PackageManager: PackageManagerConfig{
			Binary:      "pacman",
			GroupArgs:   []string{"-Qge"},
			ForeignArgs: []string{"-Qeim"},
			NativeArgs:  []string{"-Qein"},
		},
		VCS: VCSConfig{
			Binary: "git",
		},
		CommandTimeout: DefaultCommandTimeout,
		MaxOutputBytes: DefaultMaxOutputBytes,
		ParsePolicy:    DefaultParsePolicy,
	}
}

// Validate checks that the configuration can drive a run.
func (c Config) Validate() error {
	invalid := func(field, reason string) error {
		return zerr.With(zerr.Wrap(ErrInvalidConfig, reason), "field", field)
	}

	if c.BaseDir == "" {
		return invalid("base_dir", "base directory is empty")
	}
	for field, name := range map[string]string{
		"group_list_file":   c.GroupListFile,
		"package_list_file": c.PackageListFile,
	} {
		if err := (Artifact{Name: name}).Validate(); err != nil {
			return zerr.With(err, "field", field)
		}
	}
	if c.GroupListFile == c.PackageListFile {
		return invalid("package_list_file", "group list and package list must be different files")
	}
	if c.PackageManager.Binary == "" {
		return invalid("package_manager.binary", "package manager binary is empty")
	}
	if c.VCS.Binary == "" {
		return invalid("vcs.binary", "vcs binary is empty")
	}
	if c.CommandTimeout < 0 {
		return invalid("command_timeout", "command timeout is negative")
	}
	if c.MaxOutputBytes < 0 {
		return invalid("max_output_bytes", "output limit is negative")
	}
	if _, err := ParseParsePolicy(string(c.ParsePolicy)); err != nil {
		return zerr.With(err, "field", "parse_policy")
	}
	return nil
}

// Artifacts returns the artifacts derived from a snapshot: the group list
// and the ungrouped explicit package list, in that order.
func (c Config) Artifacts(snap Snapshot) []Artifact {
	return []Artifact{
		{Name: c.GroupListFile, Lines: snap.Groups},
		{Name: c.PackageListFile, Lines: snap.UngroupedExplicit},
	}
}
