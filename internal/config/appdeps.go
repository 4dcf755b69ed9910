package config

import "gopkg.in/yaml.v3"

// AppDependencies is the project-level `apps.<name>` sum type (§4.2):
// either a bare list of package names, or an object carrying an
// optional ts_alias override alongside the package list.
type AppDependencies struct {
	Packages []string
	TsAlias  *TsAlias
	isList   bool
}

func (a *AppDependencies) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		a.Packages = list
		a.isList = true
		return nil
	}
	var obj struct {
		TsAlias  *TsAlias `yaml:"tsAlias"`
		Packages []string `yaml:"packages"`
	}
	if err := node.Decode(&obj); err != nil {
		return err
	}
	a.Packages = obj.Packages
	a.TsAlias = obj.TsAlias
	return nil
}

func (a AppDependencies) MarshalYAML() (interface{}, error) {
	if a.isList {
		return a.Packages, nil
	}
	return struct {
		TsAlias  *TsAlias `yaml:"tsAlias,omitempty"`
		Packages []string `yaml:"packages,omitempty"`
	}{a.TsAlias, a.Packages}, nil
}

// GetPackages returns the declared package list regardless of form.
func (a AppDependencies) GetPackages() []string { return a.Packages }

// GetTsAlias returns the object form's ts_alias override, or nil if
// this entry was written as a bare list (which carries no alias).
func (a AppDependencies) GetTsAlias() *TsAlias {
	if a.isList {
		return nil
	}
	return a.TsAlias
}
