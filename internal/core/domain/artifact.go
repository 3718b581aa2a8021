package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Default artifact file names, matching the files kept in the backup repository.
const (
	DefaultGroupListFile   = "grouplist"
	DefaultPackageListFile = "pkglist"
)

// Artifact is one derived package view to be written as a flat text file.
type Artifact struct {
	// Name is the file name of the artifact inside the base directory.
	Name string

	// Lines are the entries to write, one per line, in order.
	Lines []string
}

// Validate checks that the artifact name is a plain file name.
func (a Artifact) Validate() error {
	if a.Name == "" || a.Name == "." || a.Name == ".." || strings.ContainsAny(a.Name, `/\`) {
		return zerr.With(zerr.Wrap(ErrInvalidArtifactName, "artifact name must be a plain file name"), "file", a.Name)
	}
	return nil
}

// Encode serializes the artifact lines.
func (a Artifact) Encode() []byte {
	return EncodeLines(a.Lines)
}

// EncodeLines joins lines with a trailing newline after every entry.
// An empty list encodes to an empty file.
func EncodeLines(lines []string) []byte {
	size := 0
	for _, l := range lines {
		size += len(l) + 1
	}
	var b strings.Builder
	b.Grow(size)
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// DecodeLines splits artifact content back into its lines. It is the inverse
// of EncodeLines for lines that contain no newline characters.
func DecodeLines(data []byte) []string {
	text := string(data)
	if text == "" {
		return []string{}
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// DiffStat holds line counts reported by the version-control diff for one file.
type DiffStat struct {
	Added   int
	Removed int
}

// WriteResult describes an artifact that has been written.
type WriteResult struct {
	// Path is the absolute path of the written file.
	Path string

	// Digest is the xxhash64 of the written content, hex encoded.
	Digest string

	// Changed reports whether the content differs from the file it replaced.
	Changed bool
}

// ArtifactReport is the outcome of one artifact pipeline (write, then diff).
type ArtifactReport struct {
	Artifact Artifact
	Result   WriteResult
	Diff     DiffStat

	// DiffErr is set when the diff could not be computed; Diff is then zero.
	DiffErr error

	// WriteErr is set when the artifact could not be written; no diff was attempted.
	WriteErr error
}

// Failed reports whether the artifact could not be written.
func (r ArtifactReport) Failed() bool {
	return r.WriteErr != nil
}

// DiffAvailable reports whether Diff holds real counts.
func (r ArtifactReport) DiffAvailable() bool {
	return r.WriteErr == nil && r.DiffErr == nil
}
