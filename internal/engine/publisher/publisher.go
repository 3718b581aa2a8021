// Package publisher writes artifacts and reports their diff against the
// last committed revision.
package publisher

import (
	"context"
	"fmt"

	"github.com/cnwangjie/arch-backup/internal/core/domain"
	"github.com/cnwangjie/arch-backup/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// Publisher runs one write-then-diff pipeline per artifact.
type Publisher struct {
	store  ports.ArtifactStore
	differ ports.DiffStater
	tracer ports.Tracer
	logger ports.Logger
}

// New creates a Publisher.
func New(store ports.ArtifactStore, differ ports.DiffStater, tracer ports.Tracer, logger ports.Logger) *Publisher {
	return &Publisher{
		store:  store,
		differ: differ,
		tracer: tracer,
		logger: logger,
	}
}

// Publish runs the pipelines concurrently and returns one report per
// artifact, in input order. A failure in one pipeline never affects another.
func (p *Publisher) Publish(ctx context.Context, artifacts []domain.Artifact) []domain.ArtifactReport {
	ctx, span := p.tracer.Start(ctx, "publish")
	defer span.End()

	reports := make([]domain.ArtifactReport, len(artifacts))

	var g errgroup.Group
	for i, a := range artifacts {
		g.Go(func() error {
			reports[i] = p.publish(ctx, a)
			return nil
		})
	}
	_ = g.Wait()

	return reports
}

func (p *Publisher) publish(ctx context.Context, a domain.Artifact) domain.ArtifactReport {
	ctx, span := p.tracer.Start(ctx, "publish artifact")
	defer span.End()
	span.SetAttribute("file", a.Name)

	rep := domain.ArtifactReport{Artifact: a}

	res, err := p.store.Write(a)
	if err != nil {
		span.RecordError(err)
		rep.WriteErr = err
		return rep
	}
	rep.Result = res
	span.SetAttribute("changed", res.Changed)
	p.logger.Debug(fmt.Sprintf("wrote %s (%d lines, xxh64 %s)", res.Path, len(a.Lines), res.Digest))

	stat, err := p.differ.DiffStat(ctx, a.Name)
	if err != nil {
		rep.DiffErr = err
		span.SetAttribute("diff", "unavailable")
		p.logger.Warn(fmt.Sprintf("%s: %v", a.Name, err))
		return rep
	}
	rep.Diff = stat
	span.SetAttribute("added", stat.Added)
	span.SetAttribute("removed", stat.Removed)

	return rep
}
