package registry

import (
	"github.com/saravenpi/knot/internal/config"
	"github.com/saravenpi/knot/internal/model"
)

// parseDependencyLiteral splits the §4.2 shorthand `"name"` or
// `"name@constraint"` into a DependencySpec, defaulting the
// constraint to the universal wildcard and inferring Local/Remote
// source from the `@` prefix — grounded directly on
// original_source/apps/cli/src/dependency/registry.rs's
// parse_dependency_spec.
func parseDependencyLiteral(literal string, devOnly, optional bool) (model.DependencySpec, *model.Error) {
	name := literal
	reqStr := "*"
	if idx := lastAt(literal); idx >= 0 {
		name = literal[:idx]
		reqStr = literal[idx+1:]
	}

	req, err := model.ParseVersionRequirement(reqStr)
	if err != nil {
		return model.DependencySpec{}, model.ConfigurationError("dependencies", err.Error(), "pkg-name@^1.0.0")
	}

	return model.DependencySpec{
		ID:          model.NewPackageId(name),
		Requirement: req,
		Optional:    optional,
		DevOnly:     devOnly,
	}, nil
}

// lastAt finds the rightmost '@' that is not the leading remote-scope
// marker, so "@team/name@^1.0" splits after "name" while "@team/name"
// is left whole.
func lastAt(s string) int {
	for i := len(s) - 1; i > 0; i-- {
		if s[i] == '@' {
			return i
		}
	}
	return -1
}

func parseDependencyList(literals []string, devOnly, optional bool) ([]model.DependencySpec, *model.Error) {
	out := make([]model.DependencySpec, 0, len(literals))
	for _, lit := range literals {
		spec, err := parseDependencyLiteral(lit, devOnly, optional)
		if err != nil {
			return nil, err
		}
		out = append(out, spec)
	}
	return out, nil
}

func packageMetadataFrom(pkg *config.Package) model.PackageMetadata {
	md := model.PackageMetadata{Keywords: pkg.Keywords, Features: pkg.Features, Exports: pkg.Exports}
	if pkg.Description != nil {
		md.Description = *pkg.Description
	}
	if pkg.Author != nil {
		md.Author = *pkg.Author
	}
	if pkg.License != nil {
		md.License = *pkg.License
	}
	if pkg.Repository != nil {
		md.Repository = *pkg.Repository
	}
	return md
}
