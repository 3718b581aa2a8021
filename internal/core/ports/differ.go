package ports

import (
	"context"

	"github.com/cnwangjie/arch-backup/internal/core/domain"
)

// DiffStater reports how a file differs from its last committed revision.
//
//go:generate go run go.uber.org/mock/mockgen -source=differ.go -destination=mocks/mock_differ.go -package=mocks
type DiffStater interface {
	// DiffStat returns the added and removed line counts for the named file.
	// Failures wrap domain.ErrDiffUnavailable.
	DiffStat(ctx context.Context, name string) (domain.DiffStat, error)
}
