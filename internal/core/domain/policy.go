package domain

import "go.trai.ch/zerr"

// ParsePolicy decides what happens when query output does not match its grammar.
type ParsePolicy string

const (
	// PolicyAbort fails the whole run on the first malformed record.
	PolicyAbort ParsePolicy = "abort"

	// PolicySkip drops malformed records and reports how many were dropped.
	PolicySkip ParsePolicy = "skip"
)

// DefaultParsePolicy is used when no policy is configured.
const DefaultParsePolicy = PolicyAbort

// ParseParsePolicy validates a policy name. The empty string selects DefaultParsePolicy.
func ParseParsePolicy(s string) (ParsePolicy, error) {
	switch ParsePolicy(s) {
	case "":
		return DefaultParsePolicy, nil
	case PolicyAbort, PolicySkip:
		return ParsePolicy(s), nil
	default:
		return "", zerr.With(zerr.Wrap(ErrInvalidParsePolicy, "unsupported parse policy"), "policy", s)
	}
}

// Skips reports whether malformed records should be dropped instead of failing.
func (p ParsePolicy) Skips() bool {
	return p == PolicySkip
}
