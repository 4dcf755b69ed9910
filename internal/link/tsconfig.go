// Package link implements the link engine of §4.7: recreating an
// app's knot_packages directory from a resolved set and keeping its
// tsconfig.json compiler-paths in sync.
package link

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/saravenpi/knot/internal/model"
)

// reservedWords is the fixed JavaScript/TypeScript keyword set an
// alias must not collide with (§4.7 step 3).
var reservedWords = map[string]struct{}{
	"break": {}, "case": {}, "catch": {}, "class": {}, "const": {}, "continue": {}, "debugger": {},
	"default": {}, "delete": {}, "do": {}, "else": {}, "enum": {}, "export": {}, "extends": {},
	"false": {}, "finally": {}, "for": {}, "function": {}, "if": {}, "import": {}, "in": {},
	"instanceof": {}, "new": {}, "null": {}, "return": {}, "super": {}, "switch": {},
	"this": {}, "throw": {}, "true": {}, "try": {}, "typeof": {}, "var": {}, "void": {},
	"while": {}, "with": {}, "yield": {}, "let": {}, "static": {}, "implements": {},
	"interface": {}, "package": {}, "private": {}, "protected": {}, "public": {},
	"abstract": {}, "any": {}, "boolean": {}, "constructor": {}, "declare": {},
	"get": {}, "module": {}, "require": {}, "number": {}, "set": {}, "string": {},
	"symbol": {}, "type": {}, "from": {}, "of": {}, "as": {}, "async": {}, "await": {},
	"namespace": {}, "readonly": {}, "keyof": {}, "unique": {}, "infer": {},
	"is": {}, "asserts": {}, "never": {}, "object": {}, "unknown": {}, "bigint": {},
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// validateAlias reports §4.7's alias validity rule. A leading "#" is
// the documented Node subpath-import marker (the default ts_alias
// prefix), not part of the identifier itself, so it is stripped
// before the identifier/reserved-word checks run against the rest.
func validateAlias(alias string) *model.Error {
	candidate := strings.TrimPrefix(alias, "#")
	if !identifierPattern.MatchString(candidate) {
		return model.ConfigurationError("tsAlias", "alias \""+alias+"\" is not a valid JavaScript identifier", "#myPackage")
	}
	if _, reserved := reservedWords[candidate]; reserved {
		return model.ConfigurationError("tsAlias", "alias \""+alias+"\" conflicts with a reserved word", "#myPackage")
	}
	return nil
}

var trailingComma = regexp.MustCompile(`,(\s*[}\]])`)

// stripJSONComments removes // and /* */ comments outside of string
// literals, then collapses trailing commas, so a tsconfig.json with
// editor-authored comments still parses (§4.7 step 4, "tolerate...").
func stripJSONComments(content string) string {
	var out strings.Builder
	runes := []rune(content)
	inString := false
	escaped := false

	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '"' && !escaped:
			inString = !inString
			out.WriteRune(ch)
		case ch == '\\' && inString:
			escaped = !escaped
			out.WriteRune(ch)
			continue
		case ch == '/' && !inString:
			if i+1 < len(runes) && runes[i+1] == '/' {
				for i < len(runes) && runes[i] != '\n' {
					i++
				}
				if i < len(runes) {
					out.WriteRune('\n')
				}
				continue
			}
			if i+1 < len(runes) && runes[i+1] == '*' {
				i += 2
				for i+1 < len(runes) && !(runes[i] == '*' && runes[i+1] == '/') {
					i++
				}
				i++
				continue
			}
			out.WriteRune(ch)
		default:
			out.WriteRune(ch)
		}
		escaped = false
	}

	return trailingComma.ReplaceAllString(out.String(), "$1")
}

// parseTsconfig decodes content as JSON, falling back to a comment-
// and trailing-comma-tolerant re-parse only if direct parse fails
// (§4.7 step 4).
func parseTsconfig(content []byte) (map[string]interface{}, error) {
	var doc map[string]interface{}
	if err := json.Unmarshal(content, &doc); err == nil {
		return doc, nil
	}
	cleaned := stripJSONComments(string(content))
	if err := json.Unmarshal([]byte(cleaned), &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// basePattern normalizes a glob pattern to the root directory it
// targets, so "src", "src/*" and "src/**/*" are all considered the
// same base for dedup purposes (§4.7 step 4 "include array dedup").
func basePattern(pattern string) string {
	p := strings.ReplaceAll(pattern, "\\", "/")
	p = strings.TrimPrefix(p, "./")
	p = strings.TrimSuffix(p, "/")
	if idx := strings.Index(p, "/"); idx >= 0 {
		return p[:idx]
	}
	return p
}

// mergeAliases rewrites doc's compilerOptions.paths, dropping any
// prior knot-owned entry and inserting one per alias, sorted by key
// for deterministic output (§4.7 step 4, "idempotence"). prefix is the
// app's configured ts alias prefix (not necessarily "#"); a prior entry
// is knot-owned if it begins with that prefix or targets
// knot_packages, so re-linking under a different prefix still purges
// what an earlier link left behind.
func mergeAliases(doc map[string]interface{}, aliases map[string]string, prefix string) {
	compilerOptions, ok := doc["compilerOptions"].(map[string]interface{})
	if !ok {
		compilerOptions = map[string]interface{}{}
	}

	paths, ok := compilerOptions["paths"].(map[string]interface{})
	if !ok {
		paths = map[string]interface{}{}
	}

	for key := range paths {
		if strings.Contains(key, "knot_packages") || (prefix != "" && strings.HasPrefix(key, prefix)) {
			delete(paths, key)
		}
	}

	for alias, packagePath := range aliases {
		paths[alias+"/*"] = []interface{}{packagePath}
	}

	compilerOptions["paths"] = paths
	doc["compilerOptions"] = compilerOptions
}

// mergeInclude ensures doc's include array contains both src/**/* and
// knot_packages/**/*, deduplicated by base pattern (§4.7 step 4).
func mergeInclude(doc map[string]interface{}) {
	var include []interface{}
	switch v := doc["include"].(type) {
	case []interface{}:
		include = v
	case string:
		include = []interface{}{v}
	}

	hasBase := func(base string) bool {
		for _, item := range include {
			if s, ok := item.(string); ok && basePattern(s) == base {
				return true
			}
		}
		return false
	}

	if !hasBase("src") {
		include = append([]interface{}{"src/**/*"}, include...)
	}
	if !hasBase("knot_packages") {
		include = append(include, "knot_packages/**/*")
	}

	doc["include"] = include
}

// defaultTsconfig matches original_source's create_default_tsconfig_with_aliases
// baseline, used when the app has no tsconfig.json yet.
func defaultTsconfig() map[string]interface{} {
	return map[string]interface{}{
		"compilerOptions": map[string]interface{}{
			"target":                           "es2020",
			"lib":                              []interface{}{"es2020"},
			"module":                           "esnext",
			"moduleResolution":                 "node",
			"esModuleInterop":                  true,
			"allowSyntheticDefaultImports":     true,
			"strict":                           true,
			"skipLibCheck":                     true,
			"forceConsistentCasingInFileNames": true,
			"paths":                            map[string]interface{}{},
		},
		"include": []interface{}{"src/**/*", "knot_packages/**/*"},
		"exclude": []interface{}{"node_modules", "dist"},
	}
}

func marshalTsconfig(doc map[string]interface{}) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}
