// Package variables implements the layered variable context and the
// ${name} / {{name}} text interpolator (§4.1).
package variables

import (
	"fmt"
	"sort"
	"time"
)

// Source identifies which layer of a VariableContext a variable came
// from, in precedence order from lowest to highest.
type Source int

const (
	SourceProject Source = iota
	SourceApp
	SourcePackage
	SourceBuiltIn
)

func (s Source) String() string {
	switch s {
	case SourceBuiltIn:
		return "built-in"
	case SourcePackage:
		return "package"
	case SourceApp:
		return "app"
	default:
		return "project"
	}
}

// Info describes one resolvable variable and where it came from; the
// interpolator uses the names to build its missing-variable hint
// (supplemented from original_source/apps/cli/src/variables.rs's
// list_variables, dropped from spec.md's distillation).
type Info struct {
	Name   string
	Value  string
	Source Source
}

// Context holds the four variable layers and resolves references by
// precedence: built-in > package > app > project (§4.1).
type Context struct {
	builtIn map[string]string
	project map[string]string
	app     map[string]string
	pkg     map[string]string
}

// New builds a context seeded with the built-in variables: project_name,
// project_root, timestamp, date and year. now is passed in rather than
// read from the clock so callers can produce deterministic output.
func New(projectName, projectRoot string, now time.Time) *Context {
	return &Context{
		builtIn: map[string]string{
			"project_name": projectName,
			"project_root": projectRoot,
			"timestamp":    fmt.Sprintf("%d", now.Unix()),
			"date":         now.UTC().Format("2006-01-02"),
			"year":         now.UTC().Format("2006"),
		},
		project: map[string]string{},
		app:     map[string]string{},
		pkg:     map[string]string{},
	}
}

// WithProjectVariables merges project-level variables (lowest precedence).
func (c *Context) WithProjectVariables(vars map[string]string) *Context {
	for k, v := range vars {
		c.project[k] = v
	}
	return c
}

// WithAppVariables merges app-level variables.
func (c *Context) WithAppVariables(vars map[string]string) *Context {
	for k, v := range vars {
		c.app[k] = v
	}
	return c
}

// WithPackageVariables merges package-level variables (highest
// precedence short of built-ins).
func (c *Context) WithPackageVariables(vars map[string]string) *Context {
	for k, v := range vars {
		c.pkg[k] = v
	}
	return c
}

// Get resolves name under the precedence rule, reporting whether it
// was found in any layer.
func (c *Context) Get(name string) (string, Source, bool) {
	if v, ok := c.builtIn[name]; ok {
		return v, SourceBuiltIn, true
	}
	if v, ok := c.pkg[name]; ok {
		return v, SourcePackage, true
	}
	if v, ok := c.app[name]; ok {
		return v, SourceApp, true
	}
	if v, ok := c.project[name]; ok {
		return v, SourceProject, true
	}
	return "", 0, false
}

// ToMap flattens the context to a single name->value map under the
// same precedence rule, for call sites that don't need provenance.
func (c *Context) ToMap() map[string]string {
	out := make(map[string]string, len(c.builtIn)+len(c.project)+len(c.app)+len(c.pkg))
	for k, v := range c.project {
		out[k] = v
	}
	for k, v := range c.app {
		out[k] = v
	}
	for k, v := range c.pkg {
		out[k] = v
	}
	for k, v := range c.builtIn {
		out[k] = v
	}
	return out
}

// ListVariables returns every resolvable variable with its winning
// source, sorted by name.
func (c *Context) ListVariables() []Info {
	names := map[string]struct{}{}
	for _, m := range []map[string]string{c.builtIn, c.project, c.app, c.pkg} {
		for k := range m {
			names[k] = struct{}{}
		}
	}
	out := make([]Info, 0, len(names))
	for name := range names {
		value, source, _ := c.Get(name)
		out = append(out, Info{Name: name, Value: value, Source: source})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
