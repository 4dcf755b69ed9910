package model

import (
	"fmt"

	"github.com/Masterminds/semver"
)

// Version wraps semver.Version the way the teacher's gps package wraps
// it for its own solver: a thin value type so the rest of the core
// never imports Masterminds/semver directly.
type Version struct {
	v *semver.Version
}

// ParseVersion parses a three-part semver string with an optional
// pre-release tag (§3 Version).
func ParseVersion(s string) (Version, error) {
	sv, err := semver.NewVersion(s)
	if err != nil {
		return Version{}, fmt.Errorf("invalid version %q: %w", s, err)
	}
	return Version{v: sv}, nil
}

func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Version) String() string {
	if v.v == nil {
		return ""
	}
	return v.v.String()
}

func (v Version) Major() int64 { return v.v.Major() }
func (v Version) Minor() int64 { return v.v.Minor() }
func (v Version) Patch() int64 { return v.v.Patch() }

// Prerelease reports whether this version carries a pre-release tag;
// selection excludes these unless ResolutionContext.AllowPrerelease.
func (v Version) Prerelease() bool { return v.v.Prerelease() != "" }

func (v Version) PrereleaseTag() string { return v.v.Prerelease() }

// Compare returns -1, 0 or 1 the way sort.Slice comparators expect.
func (v Version) Compare(o Version) int {
	if v.v.LessThan(o.v) {
		return -1
	}
	if v.v.GreaterThan(o.v) {
		return 1
	}
	return 0
}

func (v Version) LessThan(o Version) bool    { return v.v.LessThan(o.v) }
func (v Version) GreaterThan(o Version) bool { return v.v.GreaterThan(o.v) }
func (v Version) Equal(o Version) bool       { return v.v.Equal(o.v) }

func (v Version) raw() *semver.Version { return v.v }
