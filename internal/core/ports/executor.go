// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"github.com/cnwangjie/arch-backup/internal/core/domain"
)

// CommandRunner defines the interface for running subprocesses.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type CommandRunner interface {
	// Run executes the command and returns its captured stdout.
	//
	// It returns an error wrapping domain.ErrCommandFailed if the command cannot
	// be started or exits non-zero, domain.ErrCommandTimedOut if it exceeds its
	// timeout, and domain.ErrOutputTooLarge if stdout exceeds the output cap.
	Run(ctx context.Context, cmd domain.Command) ([]byte, error)
}
