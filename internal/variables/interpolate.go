package variables

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/saravenpi/knot/internal/model"
)

// pattern matches both the primary ${IDENT} syntax and the back-compat
// {{IDENT}} syntax in one pass (§4.1).
var pattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}|\{\{([A-Za-z_][A-Za-z0-9_]*)\}\}`)

type cycleError struct {
	chain []string
}

func (e *cycleError) Error() string {
	return fmt.Sprintf("circular variable reference: %s", strings.Join(e.chain, " -> "))
}

// Interpolate expands every ${name}/{{name}} reference in text against
// ctx. Missing names are collected across the whole input and reported
// together; a cyclic reference aborts immediately, since a cycle can
// never be resolved by continuing to scan (§4.1).
func Interpolate(text string, ctx *Context) (string, error) {
	missingSeen := map[string]struct{}{}
	var missingOrder []string

	out, err := expand(text, ctx, nil, &missingOrder, missingSeen)
	if err != nil {
		if ce, ok := err.(*cycleError); ok {
			return "", model.ConfigurationError("", ce.Error(), "${name} must not reference itself, directly or transitively")
		}
		return "", err
	}
	if len(missingOrder) > 0 {
		available := make([]string, 0)
		for _, info := range ctx.ListVariables() {
			available = append(available, info.Name)
		}
		sort.Strings(available)
		return "", model.ConfigurationError(
			strings.Join(missingOrder, ", "),
			fmt.Sprintf("missing variables in template: %s", strings.Join(missingOrder, ", ")),
			fmt.Sprintf("available variables: %s", strings.Join(available, ", ")),
		)
	}
	return out, nil
}

// expand performs one left-to-right substitution pass over text,
// resolving each reference found via ctx and recursively expanding its
// value (so a variable whose value itself contains references is fully
// expanded before substitution — the "re-scan to a fixed point" rule).
// chain tracks the names currently being expanded, for cycle detection.
func expand(text string, ctx *Context, chain []string, missingOrder *[]string, missingSeen map[string]struct{}) (string, error) {
	matches := pattern.FindAllStringSubmatchIndex(text, -1)
	if matches == nil {
		return text, nil
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		name := submatch(text, m, 2)
		if name == "" {
			name = submatch(text, m, 4)
		}

		for _, prior := range chain {
			if prior == name {
				return "", &cycleError{chain: append(append([]string{}, chain...), name)}
			}
		}

		value, _, found := ctx.Get(name)
		b.WriteString(text[last:start])
		if !found {
			if _, seen := missingSeen[name]; !seen {
				missingSeen[name] = struct{}{}
				*missingOrder = append(*missingOrder, name)
			}
			b.WriteString(text[start:end])
			last = end
			continue
		}

		nested, err := expand(value, ctx, append(chain, name), missingOrder, missingSeen)
		if err != nil {
			return "", err
		}
		b.WriteString(nested)
		last = end
	}
	b.WriteString(text[last:])
	return b.String(), nil
}

func submatch(text string, idx []int, group int) string {
	if idx[group] < 0 || idx[group+1] < 0 {
		return ""
	}
	return text[idx[group]:idx[group+1]]
}

// InterpolateAll applies Interpolate to every string in fields,
// returning the first error encountered (preserving field order, which
// matters because errors are annotated with which field failed by the
// caller).
func InterpolateAll(fields []*string, ctx *Context) error {
	for _, f := range fields {
		if f == nil {
			continue
		}
		out, err := Interpolate(*f, ctx)
		if err != nil {
			return err
		}
		*f = out
	}
	return nil
}
