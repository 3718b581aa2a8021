package ports

import (
	"context"

	"github.com/cnwangjie/arch-backup/internal/core/domain"
)

// PackageQuerier reads the installed package database.
//
//go:generate go run go.uber.org/mock/mockgen -source=package_manager.go -destination=mocks/mock_package_manager.go -package=mocks
type PackageQuerier interface {
	// QueryGroups returns the installed groups and their members.
	// skipped counts malformed lines dropped under the skip parse policy.
	QueryGroups(ctx context.Context) (membership *domain.Membership, skipped int, err error)

	// QueryExplicit returns the names of packages explicitly installed from the
	// given provenance, in query order.
	QueryExplicit(ctx context.Context, prov domain.Provenance) (names []string, skipped int, err error)
}
