package model

import "strings"

// PackageSourceKind distinguishes a locally-authored package from one
// pulled from a remote registry. Names beginning with "@" are remote;
// bare names are local (§3 PackageId invariant).
type PackageSourceKind uint8

const (
	SourceLocal PackageSourceKind = iota
	SourceRemote
)

func (k PackageSourceKind) String() string {
	if k == SourceRemote {
		return "remote"
	}
	return "local"
}

// PackageId is the identity of a package across the system. It is a
// plain comparable struct so it can be used directly as a map key,
// matching §3's "equality and hashing use both fields" invariant.
type PackageId struct {
	Name       string
	Source     PackageSourceKind
	RegistryID string
}

// NewPackageId builds a PackageId from a bare name, inferring Local vs
// Remote from the leading "@" the same way config validation does.
func NewPackageId(name string) PackageId {
	if strings.HasPrefix(name, "@") {
		return PackageId{Name: name, Source: SourceRemote}
	}
	return PackageId{Name: name, Source: SourceLocal}
}

// LocalPackageId constructs an explicitly-local id, useful in tests and
// for the local registry which is authoritative for Source=Local.
func LocalPackageId(name string) PackageId {
	return PackageId{Name: name, Source: SourceLocal}
}

// RemotePackageId constructs an explicitly-remote id for a given
// registry, e.g. the registry a project's knot.reg points at.
func RemotePackageId(name, registryID string) PackageId {
	return PackageId{Name: name, Source: SourceRemote, RegistryID: registryID}
}

func (id PackageId) IsRemote() bool { return id.Source == SourceRemote }

func (id PackageId) String() string {
	if id.IsRemote() {
		return id.Name
	}
	return id.Name
}
