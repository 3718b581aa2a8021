package domain

import "strings"

// Provenance identifies which package source an explicitly installed package came from.
type Provenance string

const (
	// ProvenanceAUR marks packages that are not found in any sync database (foreign packages).
	ProvenanceAUR Provenance = "aur"

	// ProvenanceRepo marks packages installed from the primary sync repositories.
	ProvenanceRepo Provenance = "repo"
)

// Provenances lists every provenance in the order their explicit lists are concatenated.
var Provenances = []Provenance{ProvenanceAUR, ProvenanceRepo}

// String returns the provenance identifier.
func (p Provenance) String() string {
	return string(p)
}

// Label returns a human-readable description of the provenance.
func (p Provenance) Label() string {
	switch p {
	case ProvenanceAUR:
		return "from AUR"
	case ProvenanceRepo:
		return "from official repo"
	default:
		return string(p)
	}
}

// Package is a single installed package as observed in one snapshot.
type Package struct {
	// Name is the package name. It is unique within a snapshot.
	Name string

	// Groups lists the groups the package belongs to, in listing order.
	Groups []string

	// Explicit reports whether the package was installed at the user's request.
	Explicit bool

	// Provenance is set for explicitly installed packages.
	Provenance Provenance
}

// Grouped reports whether the package belongs to at least one group.
func (p Package) Grouped() bool {
	return len(p.Groups) > 0
}

// String describes the package for logs, e.g. "bash (repo) in base".
func (p Package) String() string {
	s := p.Name + " (" + string(p.Provenance) + ")"
	if !p.Grouped() {
		return s + " ungrouped"
	}
	return s + " in " + strings.Join(p.Groups, ", ")
}
