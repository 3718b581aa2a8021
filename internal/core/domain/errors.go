package domain

import "go.trai.ch/zerr"

var (
	// ErrCommandFailed is returned when a subprocess exits non-zero or cannot be started.
	ErrCommandFailed = zerr.New("command failed")

	// ErrCommandTimedOut is returned when a subprocess exceeds its configured timeout.
	ErrCommandTimedOut = zerr.New("command timed out")

	// ErrOutputTooLarge is returned when a subprocess writes more than the configured output cap.
	ErrOutputTooLarge = zerr.New("command output exceeds limit")

	// ErrParse is the parent of every error caused by query output not matching its grammar.
	ErrParse = zerr.New("unexpected command output")

	// ErrMalformedGroupLine is returned when a group listing line is not exactly two tokens.
	ErrMalformedGroupLine = zerr.Wrap(ErrParse, "malformed group line")

	// ErrMissingNameField is returned when a package record block has no Name field.
	ErrMissingNameField = zerr.Wrap(ErrParse, "package record has no Name field")

	// ErrDuplicateGroupMember is returned when the same package is listed twice for one group.
	ErrDuplicateGroupMember = zerr.Wrap(ErrParse, "duplicate group member")

	// ErrDiffUnavailable is returned when the version-control diff cannot be computed for an artifact.
	ErrDiffUnavailable = zerr.New("diff unavailable")

	// ErrArtifactWriteFailed is returned when an artifact cannot be written to disk.
	ErrArtifactWriteFailed = zerr.New("failed to write artifact")

	// ErrArtifactReadFailed is returned when an existing artifact cannot be read back.
	ErrArtifactReadFailed = zerr.New("failed to read artifact")

	// ErrArtifactsFailed is returned when at least one artifact pipeline failed to write.
	ErrArtifactsFailed = zerr.New("one or more artifacts could not be written")

	// ErrUnknownOperation is returned when the requested operation is not one of the known operations.
	ErrUnknownOperation = zerr.New("unknown operation")

	// ErrInvalidArtifactName is returned when an artifact file name is empty or contains a path separator.
	ErrInvalidArtifactName = zerr.New("invalid artifact name")

	// ErrInvalidParsePolicy is returned when a parse policy is neither "abort" nor "skip".
	ErrInvalidParsePolicy = zerr.New("invalid parse policy, expected 'abort' or 'skip'")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidConfig is returned when the merged configuration fails validation.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrBaseDirUnresolved is returned when the base directory cannot be determined.
	ErrBaseDirUnresolved = zerr.New("failed to resolve base directory")
)
