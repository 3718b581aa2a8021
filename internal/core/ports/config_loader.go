package ports

import "github.com/cnwangjie/arch-backup/internal/core/domain"

// ConfigLoader defines the interface for resolving the run configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load merges defaults, the optional config file and the overrides,
	// and returns a validated configuration.
	Load(overrides domain.ConfigOverrides) (domain.Config, error)
}
