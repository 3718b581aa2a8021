// Package report renders the human-readable summary of a backup run.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/cnwangjie/arch-backup/internal/adapters/detector"
	"github.com/cnwangjie/arch-backup/internal/core/domain"
	"github.com/cnwangjie/arch-backup/internal/ui/output"
	"github.com/cnwangjie/arch-backup/internal/ui/style"
	"github.com/muesli/termenv"
)

// Reporter implements ports.Reporter by writing a line-oriented summary.
type Reporter struct {
	w      io.Writer
	output *termenv.Output
}

// NewReporter creates a Reporter writing to w. ModePlain never emits escape
// sequences; any other mode follows the terminal's color profile.
func NewReporter(w io.Writer, mode detector.ColorMode) *Reporter {
	if w == nil {
		w = os.Stdout
	}

	profile := output.ColorProfile
	if mode == detector.ModePlain {
		profile = output.PlainProfile
	}

	return &Reporter{
		w:      w,
		output: output.NewWithProfile(w, profile),
	}
}

// Report writes the package counts followed by one line per artifact.
func (r *Reporter) Report(s *domain.Summary) error {
	lines := []string{
		"packages installed:",
		" " + r.count(s.AURCount) + " " + domain.ProvenanceAUR.Label(),
		" " + r.count(s.RepoCount) + " " + domain.ProvenanceRepo.Label(),
		" " + r.count(s.GroupCount) + " groups",
		" " + r.count(s.UngroupedCount) + " explicitly installed",
	}
	if s.SkippedCount > 0 {
		lines = append(lines, " "+r.paint(style.Warning, style.Yellow)+" "+
			r.count(s.SkippedCount)+" malformed records skipped")
	}
	lines = append(lines, "")

	if s.DryRun {
		lines = append(lines, r.faint("dry run, no artifacts written"))
	}
	for _, rep := range s.Reports {
		lines = append(lines, r.artifactLine(rep))
	}

	for _, l := range lines {
		if _, err := fmt.Fprintln(r.w, l); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reporter) artifactLine(rep domain.ArtifactReport) string {
	name := rep.Artifact.Name
	switch {
	case rep.Failed():
		return r.paint(style.Cross, style.Red) + " write " + name + " failed"
	case !rep.DiffAvailable():
		return r.paint(style.Warning, style.Yellow) + " write " + name + " ok, diff unavailable"
	}

	line := fmt.Sprintf("%s write %s ok %s new and %s removed",
		r.paint(style.Check, style.Green),
		name,
		r.count(rep.Diff.Added),
		r.count(rep.Diff.Removed),
	)
	if !rep.Result.Changed {
		line += " " + r.faint("(unchanged)")
	}
	return line
}

func (r *Reporter) count(n int) string {
	return r.paint(fmt.Sprint(n), style.Yellow)
}

func (r *Reporter) paint(s string, c lipgloss.Color) string {
	return r.output.String(s).Foreground(output.Color(c)).String()
}

func (r *Reporter) faint(s string) string {
	return r.output.String(s).Faint().String()
}
