package resolver

import (
	"context"

	"github.com/saravenpi/knot/internal/model"
)

// fakeRegistry is an in-memory Registry used to drive the resolver
// through the solver scenarios without any real filesystem or network
// I/O, the same role the teacher's in-memory SourceMgr fakes play in
// its own solver tests.
type fakeRegistry struct {
	versions map[string][]model.PackageVersion
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{versions: map[string][]model.PackageVersion{}}
}

func (f *fakeRegistry) add(name, version string, deps ...model.DependencySpec) {
	f.versions[name] = append(f.versions[name], model.PackageVersion{
		ID:      model.LocalPackageId(name),
		Version: model.MustParseVersion(version),
		Deps:    deps,
	})
}

func (f *fakeRegistry) ListVersions(_ context.Context, id model.PackageId) ([]model.PackageVersion, *model.Error) {
	return f.versions[id.Name], nil
}

func (f *fakeRegistry) Metadata(_ context.Context, id model.PackageId, v model.Version) (model.PackageMetadata, *model.Error) {
	return model.PackageMetadata{}, nil
}

func (f *fakeRegistry) Materialize(_ context.Context, id model.PackageId, v model.Version, dest string) *model.Error {
	return nil
}

func (f *fakeRegistry) Search(_ context.Context, query string) ([]string, *model.Error) {
	return nil, nil
}

func dep(name, requirement string) model.DependencySpec {
	return model.DependencySpec{ID: model.LocalPackageId(name), Requirement: model.MustParseVersionRequirement(requirement)}
}
