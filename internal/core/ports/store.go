package ports

import "github.com/cnwangjie/arch-backup/internal/core/domain"

// ArtifactStore persists artifacts in the base directory.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ArtifactStore interface {
	// Write overwrites the artifact file with the encoded lines.
	Write(artifact domain.Artifact) (domain.WriteResult, error)

	// Read returns the lines of an existing artifact.
	// A missing artifact reads as an empty list.
	Read(name string) ([]string, error)
}
