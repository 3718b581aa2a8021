// Package collector gathers the package inventory from concurrent queries.
package collector

import (
	"context"
	"fmt"

	"github.com/cnwangjie/arch-backup/internal/core/domain"
	"github.com/cnwangjie/arch-backup/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Collector runs the group query and one explicit-install query per
// provenance concurrently and joins their results into an Inventory.
type Collector struct {
	querier ports.PackageQuerier
	tracer  ports.Tracer
	logger  ports.Logger
}

// New creates a Collector.
func New(querier ports.PackageQuerier, tracer ports.Tracer, logger ports.Logger) *Collector {
	return &Collector{
		querier: querier,
		tracer:  tracer,
		logger:  logger,
	}
}

// Collect returns the complete inventory or the first query error.
// A failing query cancels the others; no partial inventory is returned.
func (c *Collector) Collect(ctx context.Context) (domain.Inventory, error) {
	ctx, span := c.tracer.Start(ctx, "collect")
	defer span.End()

	var (
		membership *domain.Membership
		explicit   = make([][]string, len(domain.Provenances))
		// Slot 0 belongs to the group query, slot i+1 to Provenances[i].
		skipped = make([]int, len(domain.Provenances)+1)
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ctx, span := c.tracer.Start(gctx, "query groups")
		defer span.End()

		m, n, err := c.querier.QueryGroups(ctx)
		if err != nil {
			span.RecordError(err)
			return err
		}
		span.SetAttribute("groups", m.Len())
		membership, skipped[0] = m, n
		return nil
	})

	for i, prov := range domain.Provenances {
		g.Go(func() error {
			ctx, span := c.tracer.Start(gctx, "query explicit")
			defer span.End()
			span.SetAttribute("provenance", prov)

			names, n, err := c.querier.QueryExplicit(ctx, prov)
			if err != nil {
				span.RecordError(err)
				return err
			}
			span.SetAttribute("packages", len(names))
			c.logger.Debug(fmt.Sprintf("%d packages %s", len(names), prov.Label()))
			explicit[i], skipped[i+1] = names, n
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return domain.Inventory{}, zerr.Wrap(err, "failed to collect package inventory")
	}

	inv := domain.Inventory{Membership: membership}
	for i, prov := range domain.Provenances {
		inv.SetExplicit(prov, explicit[i])
	}
	for _, n := range skipped {
		inv.Skipped += n
	}
	if inv.Skipped > 0 {
		c.logger.Warn(fmt.Sprintf("skipped %d malformed records", inv.Skipped))
	}

	return inv, nil
}
