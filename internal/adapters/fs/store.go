// Package fs implements artifact storage on the local filesystem.
package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/cnwangjie/arch-backup/internal/core/domain"
	"github.com/cnwangjie/arch-backup/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ArtifactStore = (*Store)(nil)

// Store implements ports.ArtifactStore with one flat file per artifact in a
// base directory. Writes to distinct artifacts may run concurrently.
type Store struct {
	root   string
	hasher ports.Hasher
}

// NewStore creates a Store rooted at dir.
func NewStore(dir string, hasher ports.Hasher) *Store {
	return &Store{
		root:   filepath.Clean(dir),
		hasher: hasher,
	}
}

// Path returns where the named artifact is stored.
func (s *Store) Path(name string) string {
	return filepath.Join(s.root, name)
}

// Write replaces the artifact file with the encoded lines. The new content is
// written to a temporary file in the same directory and renamed into place.
func (s *Store) Write(artifact domain.Artifact) (domain.WriteResult, error) {
	if err := artifact.Validate(); err != nil {
		err = zerr.Wrap(errors.Join(domain.ErrArtifactWriteFailed, err), "refusing to write artifact")
		return domain.WriteResult{}, zerr.With(err, "file", artifact.Name)
	}

	path := s.Path(artifact.Name)
	data := artifact.Encode()
	result := domain.WriteResult{
		Path:    path,
		Digest:  s.hasher.Sum(data),
		Changed: true,
	}

	//nolint:gosec // path is the validated artifact name under the base directory
	prev, err := os.ReadFile(path)
	switch {
	case err == nil:
		result.Changed = s.hasher.Sum(prev) != result.Digest
	case !errors.Is(err, iofs.ErrNotExist):
		return domain.WriteResult{}, writeError(err, "failed to read previous artifact", path)
	}

	if err := os.MkdirAll(s.root, domain.DirPerm); err != nil {
		return domain.WriteResult{}, writeError(err, "failed to create base directory", s.root)
	}

	if err := writeFileAtomic(path, data); err != nil {
		return domain.WriteResult{}, err
	}

	return result, nil
}

// Read returns the lines of the named artifact. A missing file reads as empty.
func (s *Store) Read(name string) ([]string, error) {
	if err := (domain.Artifact{Name: name}).Validate(); err != nil {
		return nil, err
	}

	path := s.Path(name)
	//nolint:gosec // path is the validated artifact name under the base directory
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return []string{}, nil
		}
		err = zerr.Wrap(errors.Join(domain.ErrArtifactReadFailed, err), "failed to read artifact")
		return nil, zerr.With(err, "path", path)
	}
	return domain.DecodeLines(data), nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return writeError(err, "failed to create temporary file", path)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return writeError(err, "failed to write artifact", path)
	}
	if err := tmp.Chmod(domain.FilePerm); err != nil {
		_ = tmp.Close()
		return writeError(err, "failed to set artifact permissions", path)
	}
	if err := tmp.Close(); err != nil {
		return writeError(err, "failed to write artifact", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return writeError(err, "failed to replace artifact", path)
	}
	return nil
}

func writeError(err error, msg, path string) error {
	return zerr.With(zerr.Wrap(errors.Join(domain.ErrArtifactWriteFailed, err), msg), "path", path)
}
