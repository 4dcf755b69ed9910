package config

import "gopkg.in/yaml.v3"

// Variable is a configuration variable with its value and an optional
// description. In YAML it may be written either as a bare string or as
// a `{value, description}` mapping (§4.2); both forms decode to this
// same struct so the rest of the codebase never has to branch on
// which form was used (supplemented from
// original_source/apps/cli/src/config.rs's ConfigVariable, which kept
// the two forms as a Rust untagged enum).
type Variable struct {
	Value       string
	Description string
}

func (v *Variable) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		v.Value = s
		return nil
	}
	var complex struct {
		Value       string `yaml:"value"`
		Description string `yaml:"description"`
	}
	if err := node.Decode(&complex); err != nil {
		return err
	}
	v.Value = complex.Value
	v.Description = complex.Description
	return nil
}

func (v Variable) MarshalYAML() (interface{}, error) {
	if v.Description == "" {
		return v.Value, nil
	}
	return struct {
		Value       string `yaml:"value"`
		Description string `yaml:"description"`
	}{v.Value, v.Description}, nil
}

// FlattenVariables reduces a variables map to plain name->value pairs,
// the form internal/variables.Context consumes.
func FlattenVariables(vars map[string]Variable) map[string]string {
	out := make(map[string]string, len(vars))
	for k, v := range vars {
		out[k] = v.Value
	}
	return out
}
