package domain

import (
	"errors"

	"go.trai.ch/zerr"
)

// Summary is what one backup run observed and produced.
type Summary struct {
	Operation Operation
	DryRun    bool

	AURCount       int
	RepoCount      int
	GroupCount     int
	UngroupedCount int
	SkippedCount   int

	Snapshot Snapshot
	Reports  []ArtifactReport
}

// NewSummary builds the counts of a run from its inventory and snapshot.
func NewSummary(op Operation, inv Inventory, snap Snapshot) *Summary {
	return &Summary{
		Operation:      op,
		AURCount:       len(inv.ExplicitAUR),
		RepoCount:      len(inv.ExplicitRepo),
		GroupCount:     len(snap.Groups),
		UngroupedCount: len(snap.UngroupedExplicit),
		SkippedCount:   inv.Skipped,
		Snapshot:       snap,
	}
}

// Err joins the write errors of every failed artifact under ErrArtifactsFailed.
// It returns nil when every artifact was written.
func (s *Summary) Err() error {
	var errs []error
	for _, r := range s.Reports {
		if r.Failed() {
			errs = append(errs, zerr.With(zerr.Wrap(r.WriteErr, r.Artifact.Name), "file", r.Artifact.Name))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(append([]error{ErrArtifactsFailed}, errs...)...)
}
