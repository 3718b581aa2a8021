package ports

import "github.com/cnwangjie/arch-backup/internal/core/domain"

// Reporter presents the outcome of a run to the user.
//
//go:generate go run go.uber.org/mock/mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Reporter interface {
	// Report writes the human-readable summary.
	Report(summary *domain.Summary) error
}
