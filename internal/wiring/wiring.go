// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/cnwangjie/arch-backup/internal/adapters/config"
	_ "github.com/cnwangjie/arch-backup/internal/adapters/fs"
	_ "github.com/cnwangjie/arch-backup/internal/adapters/logger"
	_ "github.com/cnwangjie/arch-backup/internal/adapters/shell"
	_ "github.com/cnwangjie/arch-backup/internal/adapters/telemetry"
	// Register app nodes.
	_ "github.com/cnwangjie/arch-backup/internal/app"
)
