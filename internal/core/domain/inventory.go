package domain

// Inventory is the raw result of querying the package database once.
type Inventory struct {
	// Membership holds installed groups and their members.
	Membership *Membership

	// ExplicitAUR lists explicitly installed foreign packages in query order.
	ExplicitAUR []string

	// ExplicitRepo lists explicitly installed sync-repository packages in query order.
	ExplicitRepo []string

	// Skipped counts malformed records dropped under the skip parse policy.
	Skipped int
}

// Groups returns the installed group names in first-seen order.
func (inv Inventory) Groups() []string {
	if inv.Membership == nil {
		return nil
	}
	return inv.Membership.Groups()
}

// Explicit returns the explicit list for a provenance.
func (inv Inventory) Explicit(p Provenance) []string {
	switch p {
	case ProvenanceAUR:
		return inv.ExplicitAUR
	case ProvenanceRepo:
		return inv.ExplicitRepo
	default:
		return nil
	}
}

// SetExplicit stores the explicit list for a provenance.
func (inv *Inventory) SetExplicit(p Provenance, names []string) {
	switch p {
	case ProvenanceAUR:
		inv.ExplicitAUR = names
	case ProvenanceRepo:
		inv.ExplicitRepo = names
	}
}

// Snapshot is the reconciled view of an Inventory.
type Snapshot struct {
	// Groups lists installed groups in first-seen order.
	Groups []string

	// PackagesInAnyGroup is the union of every group's members.
	PackagesInAnyGroup []string

	// ExplicitTotal is the deduplicated concatenation of the AUR and repo explicit lists.
	ExplicitTotal []string

	// UngroupedExplicit is ExplicitTotal minus every package that belongs to a group.
	UngroupedExplicit []string

	// Packages holds one record per explicitly installed package, in ExplicitTotal order.
	Packages []Package
}

// Reconcile derives the ungrouped explicit package set from an Inventory.
// It performs no I/O. Order follows concatenation order: AUR entries first,
// then repo entries; nothing is re-sorted. Names are compared exactly.
func Reconcile(inv Inventory) Snapshot {
	membership := inv.Membership
	if membership == nil {
		membership = NewMembership()
	}

	snap := Snapshot{
		Groups:             membership.Groups(),
		PackagesInAnyGroup: membership.Packages(),
		ExplicitTotal:      []string{},
		UngroupedExplicit:  []string{},
	}

	seen := make(map[string]struct{}, len(inv.ExplicitAUR)+len(inv.ExplicitRepo))
	for _, prov := range Provenances {
		for _, name := range inv.Explicit(prov) {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}

			snap.ExplicitTotal = append(snap.ExplicitTotal, name)
			snap.Packages = append(snap.Packages, Package{
				Name:       name,
				Groups:     membership.GroupsOf(name),
				Explicit:   true,
				Provenance: prov,
			})

			if !membership.Contains(name) {
				snap.UngroupedExplicit = append(snap.UngroupedExplicit, name)
			}
		}
	}

	return snap
}

// FilterUngrouped removes every name that belongs to a group in membership,
// preserving order. Applying it to its own output yields the same list.
func FilterUngrouped(names []string, membership *Membership) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if membership != nil && membership.Contains(name) {
			continue
		}
		out = append(out, name)
	}
	return out
}
