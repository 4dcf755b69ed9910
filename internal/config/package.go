package config

import (
	"os"

	"github.com/saravenpi/knot/internal/model"
)

// Package is a `packages/<name>/package.yml` document (§4.2
// Package-only fields). Dependency entries keep their raw
// `"name"`/`"name@constraint"` strings here; internal/registry's local
// registry splits them into model.DependencySpec values.
type Package struct {
	Name                 string               `yaml:"name"`
	Team                 *string              `yaml:"team,omitempty"`
	Version              string               `yaml:"version"`
	Description          *string              `yaml:"description,omitempty"`
	Author               *string              `yaml:"author,omitempty"`
	License              *string              `yaml:"license,omitempty"`
	Repository           *string              `yaml:"repository,omitempty"`
	Keywords             []string             `yaml:"keywords,omitempty"`
	Tags                 []string             `yaml:"tags,omitempty"`
	Scripts              map[string]string    `yaml:"scripts,omitempty"`
	Dependencies         []string             `yaml:"dependencies,omitempty"`
	DevDependencies       []string            `yaml:"devDependencies,omitempty"`
	OptionalDependencies  []string            `yaml:"optionalDependencies,omitempty"`
	PeerDependencies      []string            `yaml:"peerDependencies,omitempty"`
	Exports              map[string]string    `yaml:"exports,omitempty"`
	Features             []string             `yaml:"features,omitempty"`
	Variables            map[string]Variable  `yaml:"variables,omitempty"`
}

// LoadPackage reads and validates a package.yml/package.yaml file.
func LoadPackage(path string) (*Package, *model.Error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, model.IOError("read", path, err)
	}
	var p Package
	if cfgErr := decodeStrict(content, &p); cfgErr != nil {
		return nil, cfgErr
	}
	if cfgErr := p.Validate(); cfgErr != nil {
		return nil, cfgErr
	}
	return &p, nil
}

func (p *Package) Validate() *model.Error {
	if err := validateSafeName("name", p.Name); err != nil {
		return err
	}
	if p.Team != nil && *p.Team != "" {
		if err := validateSafeName("team", *p.Team); err != nil {
			return err
		}
	}
	if err := validateSemverLiteral(p.Version); err != nil {
		return err
	}
	if err := validateDescription("description", p.Description); err != nil {
		return err
	}
	for _, tag := range p.Tags {
		if err := validateTag(tag); err != nil {
			return err
		}
	}
	if err := validateScripts(p.Scripts); err != nil {
		return err
	}
	for _, field := range [][]string{p.Dependencies, p.DevDependencies, p.OptionalDependencies, p.PeerDependencies} {
		for _, dep := range field {
			if err := validateDependencyLiteral(dep); err != nil {
				return err
			}
		}
	}
	return nil
}

// validateDependencyLiteral checks the "name" or "name@constraint"
// shorthand named in §4.2 — only the package-name half; the
// constraint half is validated lazily by
// model.ParseVersionRequirement when the local registry builds specs.
func validateDependencyLiteral(dep string) *model.Error {
	name := dep
	if idx := indexAt(dep); idx >= 0 {
		name = dep[:idx]
	}
	return validatePackageName("dependencies", name)
}

func indexAt(s string) int {
	for i := len(s) - 1; i > 0; i-- {
		if s[i] == '@' {
			return i
		}
	}
	return -1
}
