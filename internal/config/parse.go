package config

import (
	"bytes"
	"strings"

	"github.com/saravenpi/knot/internal/model"
	"gopkg.in/yaml.v3"
)

// decodeStrict runs a yaml.v3 decoder with KnownFields(true) so any
// field not named by the destination struct is rejected, and maps a
// resulting error through the ordered table in §4.2 so the message
// reaching the user matches the documented behavior rather than
// yaml.v3's own wording.
func decodeStrict(content []byte, out interface{}) *model.Error {
	if strings.TrimSpace(string(content)) == "" {
		return model.ConfigurationError("", "Empty configuration", "name: my-project")
	}

	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return model.ConfigurationError("", mapYAMLError(err.Error()), "name: my-project")
	}
	return nil
}

// mapYAMLError applies the ordered, first-match-wins rules of §4.2's
// failure-mapping table.
func mapYAMLError(raw string) string {
	switch {
	case strings.Contains(raw, "missing field"):
		field := extractBacktick(raw)
		switch field {
		case "name":
			return "Missing name field"
		case "version":
			return "Missing version field"
		case "":
			return "Missing required field"
		default:
			return "Missing " + field + " field"
		}
	case strings.Contains(raw, "invalid type") && strings.Contains(raw, "string"):
		return "Expected string value"
	case strings.Contains(raw, "invalid type") && strings.Contains(raw, "sequence"):
		return "Expected array/list value"
	case strings.Contains(raw, "invalid type") && strings.Contains(raw, "map"):
		return "Expected object/mapping value"
	case strings.Contains(raw, "invalid type"):
		return "Invalid field type"
	case strings.Contains(raw, "duplicate key") || strings.Contains(raw, "mapping key") && strings.Contains(raw, "already defined"):
		return "Duplicate field found"
	case strings.Contains(raw, "while parsing") || strings.Contains(raw, "could not find"):
		return "Invalid YAML syntax"
	default:
		return raw
	}
}

func extractBacktick(s string) string {
	start := strings.IndexByte(s, '`')
	if start < 0 {
		return ""
	}
	end := strings.IndexByte(s[start+1:], '`')
	if end < 0 {
		return ""
	}
	return s[start+1 : start+1+end]
}
