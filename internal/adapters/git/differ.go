// Package git reports artifact changes through git.
package git

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/cnwangjie/arch-backup/internal/core/domain"
	"github.com/cnwangjie/arch-backup/internal/core/ports"
	"go.trai.ch/zerr"
)

// Differ implements ports.DiffStater with "git diff --numstat".
type Differ struct {
	runner ports.CommandRunner
	cfg    domain.Config
}

// NewDiffer creates a Differ that runs in the configured base directory.
func NewDiffer(runner ports.CommandRunner, cfg domain.Config) *Differ {
	return &Differ{
		runner: runner,
		cfg:    cfg,
	}
}

// DiffStat returns the line counts of name against the checked-out revision.
func (d *Differ) DiffStat(ctx context.Context, name string) (domain.DiffStat, error) {
	out, err := d.runner.Run(ctx, domain.Command{
		Name:      d.cfg.VCS.Binary,
		Args:      []string{"diff", "--numstat", "--", name},
		Dir:       d.cfg.BaseDir,
		Timeout:   d.cfg.CommandTimeout,
		MaxOutput: d.cfg.MaxOutputBytes,
	})
	if err != nil {
		err = zerr.Wrap(errors.Join(domain.ErrDiffUnavailable, err), "cannot diff "+name)
		return domain.DiffStat{}, zerr.With(err, "file", name)
	}
	return ParseDiffStat(string(out)), nil
}

// ParseDiffStat reads the two leading whitespace-separated counts of numstat
// output. A count that is absent or not a number is zero, so it never fails.
func ParseDiffStat(text string) domain.DiffStat {
	fields := strings.Fields(text)
	return domain.DiffStat{
		Added:   countAt(fields, 0),
		Removed: countAt(fields, 1),
	}
}

func countAt(fields []string, i int) int {
	if i >= len(fields) {
		return 0
	}
	n, err := strconv.Atoi(fields[i])
	if err != nil || n < 0 {
		return 0
	}
	return n
}
