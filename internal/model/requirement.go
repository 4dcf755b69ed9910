package model

import (
	"fmt"

	"github.com/Masterminds/semver"
)

// VersionRequirement is a set-valued predicate over Versions (§3).
// It supports exact, caret, tilde, range-comparator and wildcard forms
// by delegating straight to Masterminds/semver's Constraint, the same
// library the teacher vendors for its own solver. The literal "latest"
// is special-cased to the universal wildcard, per §3 and Open Question
// #3 of spec.md.
type VersionRequirement struct {
	raw        string
	constraint semver.Constraint
	isLatest   bool
}

// Wildcard is the universal "any version" requirement.
func Wildcard() VersionRequirement {
	c, _ := semver.NewConstraint("*")
	return VersionRequirement{raw: "*", constraint: c}
}

// ParseVersionRequirement parses a constraint string. The empty string
// and the literal "latest" both map to the universal wildcard.
func ParseVersionRequirement(s string) (VersionRequirement, error) {
	if s == "" || s == "*" {
		return Wildcard(), nil
	}
	if s == "latest" {
		w := Wildcard()
		w.isLatest = true
		w.raw = "latest"
		return w, nil
	}
	c, err := semver.NewConstraint(s)
	if err != nil {
		return VersionRequirement{}, fmt.Errorf("invalid version requirement %q: %w", s, err)
	}
	return VersionRequirement{raw: s, constraint: c}, nil
}

func MustParseVersionRequirement(s string) VersionRequirement {
	r, err := ParseVersionRequirement(s)
	if err != nil {
		panic(err)
	}
	return r
}

// Matches reports whether v satisfies this requirement. It does not
// consider pre-release policy; that is the resolver's job (§4.6 Phase
// 3 filters on allow_prerelease separately).
func (r VersionRequirement) Matches(v Version) bool {
	if r.constraint == nil {
		return true
	}
	return r.constraint.Matches(v.raw()) == nil
}

// IsWildcard reports whether this requirement admits every version,
// including via the "latest" literal.
func (r VersionRequirement) IsWildcard() bool {
	return r.raw == "*" || r.raw == "" || r.isLatest
}

// IsLatestLiteral reports whether this requirement was spelled as the
// literal "latest" rather than "*" — used to emit the warning named in
// spec.md's Open Question #3 when "latest" appears in published
// package metadata rather than as a root override.
func (r VersionRequirement) IsLatestLiteral() bool { return r.isLatest }

func (r VersionRequirement) String() string {
	if r.raw == "" {
		return "*"
	}
	return r.raw
}

// IsExactLiteral reports whether this requirement names exactly one
// version with no operator, used by the Strict strategy (§4.6 Phase 3).
func (r VersionRequirement) IsExactLiteral() bool {
	if r.isLatest || r.raw == "*" || r.raw == "" {
		return false
	}
	for _, c := range r.raw {
		switch {
		case c >= '0' && c <= '9':
		case c == '.':
		case c == '-':
		case (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
			// allowed inside pre-release tags, e.g. 1.0.0-alpha.1
		default:
			return false
		}
	}
	return true
}
