package config

import "gopkg.in/yaml.v3"

// TsAlias is the boolean-or-string sum named in §4.2: `true` requests
// the default `#` compiler-path prefix, `false` disables aliasing, and
// a string supplies an explicit prefix.
type TsAlias struct {
	set     bool
	boolean bool
	alias   string
}

func (t *TsAlias) UnmarshalYAML(node *yaml.Node) error {
	var b bool
	if err := node.Decode(&b); err == nil {
		t.set = true
		t.boolean = true
		t.alias = b2alias(b)
		return nil
	}
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	t.set = true
	t.boolean = false
	t.alias = s
	return nil
}

func (t TsAlias) MarshalYAML() (interface{}, error) {
	if t.boolean {
		return t.alias != "", nil
	}
	return t.alias, nil
}

func b2alias(b bool) string {
	if b {
		return "#"
	}
	return ""
}

// Set reports whether this TsAlias was present in the source document.
func (t TsAlias) Set() bool { return t.set }

// Alias returns the resolved compiler-path prefix, or "" if aliasing
// is disabled.
func (t TsAlias) Alias() string { return t.alias }

// FirstTsAlias returns the alias of the first candidate that was
// explicitly set in the source document, implementing §4.3's
// ts_alias_for precedence (app > project.apps.<name> > project).
func FirstTsAlias(candidates ...*TsAlias) string {
	for _, c := range candidates {
		if c != nil && c.Set() {
			return c.Alias()
		}
	}
	return ""
}
