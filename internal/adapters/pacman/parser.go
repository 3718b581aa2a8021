package pacman

import (
	"strings"

	"github.com/cnwangjie/arch-backup/internal/core/domain"
	"go.trai.ch/zerr"
)

// nameKey is the record field holding the package name.
const nameKey = "Name"

// ParseGroupListing folds group listing output into a Membership.
//
// Every non-blank line must be exactly two whitespace-separated tokens,
// "<group> <package>". Groups keep the order in which they first appear.
// Malformed lines and repeated pairs either abort parsing or, under
// domain.PolicySkip, are dropped and counted in skipped.
func ParseGroupListing(text string, policy domain.ParsePolicy) (m *domain.Membership, skipped int, err error) {
	m = domain.NewMembership()

	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimRight(raw, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			if policy.Skips() {
				skipped++
				continue
			}
			return nil, skipped, lineError(domain.ErrMalformedGroupLine, "expected '<group> <package>'", line, i+1)
		}

		if !m.Add(fields[0], fields[1]) {
			if policy.Skips() {
				skipped++
				continue
			}
			return nil, skipped, lineError(domain.ErrDuplicateGroupMember, "package listed twice for group "+fields[0], line, i+1)
		}
	}

	return m, skipped, nil
}

func lineError(sentinel error, msg, line string, lineNo int) error {
	err := zerr.With(zerr.Wrap(sentinel, msg), "line", line)
	return zerr.With(err, "line_no", lineNo)
}

// Record is one "Key : Value" block of package information output.
type Record struct {
	// Line is the 1-based line number the block starts at.
	Line int

	keys   []string
	values map[string]string
}

// Get returns the trimmed value of a field.
func (r Record) Get(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the field names in the order they appeared.
func (r Record) Keys() []string {
	return r.keys
}

func (r *Record) set(key, value string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

func (r *Record) appendToLast(value string) {
	if len(r.keys) == 0 {
		return
	}
	last := r.keys[len(r.keys)-1]
	r.values[last] = strings.TrimSpace(r.values[last] + " " + value)
}

// ParseRecordBlocks splits package information output into records.
//
// Blocks are separated by one or more blank lines. Within a block each line is
// split at its first colon into a trimmed key and value. A line without a
// colon continues the value of the previous field.
func ParseRecordBlocks(text string) []Record {
	var (
		records []Record
		current Record
		open    bool
	)

	flush := func() {
		if open {
			records = append(records, current)
		}
		current = Record{}
		open = false
	}

	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimRight(raw, "\r")
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if !open {
			current.Line = i + 1
			open = true
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			current.appendToLast(strings.TrimSpace(line))
			continue
		}
		current.set(strings.TrimSpace(key), strings.TrimSpace(value))
	}
	flush()

	return records
}

// ExtractNames returns the Name field of every record in order.
// A record without a non-empty Name either aborts extraction or, under
// domain.PolicySkip, is dropped and counted in skipped.
func ExtractNames(records []Record, policy domain.ParsePolicy) (names []string, skipped int, err error) {
	names = make([]string, 0, len(records))

	for i, rec := range records {
		name, ok := rec.Get(nameKey)
		if !ok || name == "" {
			if policy.Skips() {
				skipped++
				continue
			}
			err := zerr.With(zerr.Wrap(domain.ErrMissingNameField, "record has no package name"), "block", i+1)
			return nil, skipped, zerr.With(err, "line_no", rec.Line)
		}
		names = append(names, name)
	}

	return names, skipped, nil
}
