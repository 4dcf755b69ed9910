package model

// PackageMetadata carries the descriptive, non-structural fields of a
// package version (§3).
type PackageMetadata struct {
	Description string
	Author      string
	License     string
	Repository  string
	Keywords    []string
	Exports     map[string]string
	Features    []string
	Integrity   string
}

// PackageVersion is a concrete node in the package graph (§3).
type PackageVersion struct {
	ID      PackageId
	Version Version

	Deps         []DependencySpec
	DevDeps      []DependencySpec
	OptionalDeps []DependencySpec
	PeerDeps     []DependencySpec

	// SourcePath is set iff ID.Source == SourceLocal.
	SourcePath string

	Metadata PackageMetadata
}

// ApplicableDependencies merges Deps with the dev/optional lists that
// ctx admits, filtered by each spec's own Applicable check (§4.1/§4.6).
// Peer dependencies are never auto-included: like npm peerDependencies
// they state a compatibility requirement the consumer must already
// satisfy, not an edge to traverse.
func (pv PackageVersion) ApplicableDependencies(ctx ResolutionContext) []DependencySpec {
	out := make([]DependencySpec, 0, len(pv.Deps)+len(pv.DevDeps)+len(pv.OptionalDeps))
	for _, d := range pv.Deps {
		if d.Applicable(ctx) {
			out = append(out, d)
		}
	}
	for _, d := range pv.DevDeps {
		if d.Applicable(ctx) {
			out = append(out, d)
		}
	}
	for _, d := range pv.OptionalDeps {
		if d.Applicable(ctx) {
			out = append(out, d)
		}
	}
	return out
}

// UnmetPeerDependencies reports which of pv's peer deps are not
// satisfied by the given resolved set, for the validate phase's
// warnings (a supplemented check; spec.md's PeerDeps field was
// otherwise inert).
func (pv PackageVersion) UnmetPeerDependencies(resolved map[PackageId]PackageVersion) []DependencySpec {
	var unmet []DependencySpec
	for _, peer := range pv.PeerDeps {
		rv, ok := resolved[peer.ID]
		if !ok || !peer.Requirement.Matches(rv.Version) {
			unmet = append(unmet, peer)
		}
	}
	return unmet
}
