package domain

import "slices"

// Membership maps installed groups to their member packages.
// Groups keep the order in which they first appeared in the group listing,
// and members keep the order in which they were listed for their group.
type Membership struct {
	order   []string
	members map[string][]string
	union   map[string]struct{}
	groups  map[string][]string
}

// NewMembership creates an empty Membership.
func NewMembership() *Membership {
	return &Membership{
		members: make(map[string][]string),
		union:   make(map[string]struct{}),
		groups:  make(map[string][]string),
	}
}

// Add records that pkg belongs to group. A group seen for the first time is
// appended to the group order. Adding the same pair twice is a no-op and
// reports false.
func (m *Membership) Add(group, pkg string) bool {
	list, seen := m.members[group]
	if !seen {
		m.order = append(m.order, group)
	} else if slices.Contains(list, pkg) {
		return false
	}
	m.members[group] = append(list, pkg)
	m.union[pkg] = struct{}{}
	m.groups[pkg] = append(m.groups[pkg], group)
	return true
}

// Groups returns the group names in first-seen order.
func (m *Membership) Groups() []string {
	return slices.Clone(m.order)
}

// Members returns the packages listed for group, or nil if the group is unknown.
func (m *Membership) Members(group string) []string {
	return slices.Clone(m.members[group])
}

// Len returns the number of groups.
func (m *Membership) Len() int {
	return len(m.order)
}

// Contains reports whether pkg is a member of any group.
func (m *Membership) Contains(pkg string) bool {
	_, ok := m.union[pkg]
	return ok
}

// GroupsOf returns the groups pkg belongs to, in group order.
func (m *Membership) GroupsOf(pkg string) []string {
	return slices.Clone(m.groups[pkg])
}

// Packages returns the union of all group members, ordered by first appearance.
func (m *Membership) Packages() []string {
	seen := make(map[string]struct{}, len(m.union))
	out := make([]string, 0, len(m.union))
	for _, g := range m.order {
		for _, p := range m.members[g] {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}
