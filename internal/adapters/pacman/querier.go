// Package pacman queries the pacman package database.
package pacman

import (
	"context"
	"errors"

	"github.com/cnwangjie/arch-backup/internal/core/domain"
	"github.com/cnwangjie/arch-backup/internal/core/ports"
	"go.trai.ch/zerr"
)

// queryEnv pins pacman to untranslated field labels; record parsing keys on "Name".
var queryEnv = []string{"LC_ALL=C"}

// noMatchExitCode is what pacman exits with when a query matches no package.
const noMatchExitCode = 1

// Querier implements ports.PackageQuerier by running the package manager.
type Querier struct {
	runner ports.CommandRunner
	pm     domain.PackageManagerConfig
	policy domain.ParsePolicy
	cfg    domain.Config
}

// NewQuerier creates a Querier for the configured package manager.
func NewQuerier(runner ports.CommandRunner, cfg domain.Config) *Querier {
	return &Querier{
		runner: runner,
		pm:     cfg.PackageManager,
		policy: cfg.ParsePolicy,
		cfg:    cfg,
	}
}

// QueryGroups runs the group listing query.
func (q *Querier) QueryGroups(ctx context.Context) (*domain.Membership, int, error) {
	out, err := q.run(ctx, q.pm.GroupArgs)
	if err != nil {
		return nil, 0, err
	}

	m, skipped, err := ParseGroupListing(string(out), q.policy)
	if err != nil {
		return nil, skipped, zerr.With(err, "command", q.command(q.pm.GroupArgs).String())
	}
	return m, skipped, nil
}

// QueryExplicit runs the explicit-install query for a provenance.
func (q *Querier) QueryExplicit(ctx context.Context, prov domain.Provenance) ([]string, int, error) {
	args := q.pm.ExplicitArgs(prov)
	out, err := q.run(ctx, args)
	if err != nil {
		return nil, 0, err
	}

	names, skipped, err := ExtractNames(ParseRecordBlocks(string(out)), q.policy)
	if err != nil {
		return nil, skipped, zerr.With(err, "command", q.command(args).String())
	}
	return names, skipped, nil
}

func (q *Querier) command(args []string) domain.Command {
	return domain.Command{
		Name:      q.pm.Binary,
		Args:      args,
		Env:       queryEnv,
		Timeout:   q.cfg.CommandTimeout,
		MaxOutput: q.cfg.MaxOutputBytes,
	}
}

func (q *Querier) run(ctx context.Context, args []string) ([]byte, error) {
	out, err := q.runner.Run(ctx, q.command(args))
	if err != nil {
		if isNoMatch(err) {
			return nil, nil
		}
		return nil, err
	}
	return out, nil
}

// isNoMatch reports whether a query failed only because nothing matched:
// pacman exits 1 without writing to stderr in that case.
func isNoMatch(err error) bool {
	if !errors.Is(err, domain.ErrCommandFailed) {
		return false
	}
	var zErr *zerr.Error
	if !errors.As(err, &zErr) {
		return false
	}
	meta := zErr.Metadata()
	if _, hasStderr := meta["stderr"]; hasStderr {
		return false
	}
	code, ok := meta["exit_code"].(int)
	return ok && code == noMatchExitCode
}
