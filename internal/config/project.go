package config

import (
	"os"

	"github.com/saravenpi/knot/internal/model"
)

// Project is the root `knot.yml` document (§4.2 Project-only fields).
type Project struct {
	Name        string                     `yaml:"name"`
	Description *string                    `yaml:"description,omitempty"`
	TsAlias     *TsAlias                   `yaml:"tsAlias,omitempty"`
	Apps        map[string]AppDependencies `yaml:"apps,omitempty"`
	Scripts     map[string]string          `yaml:"scripts,omitempty"`
	Variables   map[string]Variable        `yaml:"variables,omitempty"`
}

// LoadProject reads and validates a knot.yml/knot.yaml file.
func LoadProject(path string) (*Project, *model.Error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, model.IOError("read", path, err)
	}
	var p Project
	if cfgErr := decodeStrict(content, &p); cfgErr != nil {
		return nil, cfgErr
	}
	if cfgErr := p.Validate(); cfgErr != nil {
		return nil, cfgErr
	}
	return &p, nil
}

// Validate runs §4.2's structural and semantic checks, in the order:
// common fields, then project-only (apps) fields.
func (p *Project) Validate() *model.Error {
	if err := validateSafeName("name", p.Name); err != nil {
		return err
	}
	if err := validateDescription("description", p.Description); err != nil {
		return err
	}
	if err := validateScripts(p.Scripts); err != nil {
		return err
	}
	for appName := range p.Apps {
		if err := validateSafeName("apps", appName); err != nil {
			return err
		}
	}
	return nil
}
