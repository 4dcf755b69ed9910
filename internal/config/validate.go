package config

import (
	"strings"

	"github.com/saravenpi/knot/internal/model"
)

// validateSafeName enforces §4.2's common name rule: 1-100 characters,
// no path separators or traversal, no null byte, and no leading `.`
// or `-`.
func validateSafeName(field, name string) *model.Error {
	if strings.TrimSpace(name) == "" {
		return model.ConfigurationError(field, field+" cannot be empty", "my-package")
	}
	if strings.Contains(name, "..") || strings.ContainsAny(name, "/\\") {
		return model.ConfigurationError(field, field+" contains invalid path characters: "+name, "my-package")
	}
	if strings.ContainsRune(name, 0) || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "-") {
		return model.ConfigurationError(field, field+" contains unsafe characters: "+name, "my-package")
	}
	if len(name) > 100 {
		return model.ConfigurationError(field, field+" is too long (max 100 characters): "+name, "my-package")
	}
	return nil
}

// validatePackageName allows an `@`-prefixed remote reference in
// addition to the safe-name rule (§4.2 App-only packages).
func validatePackageName(field, name string) *model.Error {
	if strings.TrimSpace(name) == "" {
		return model.ConfigurationError(field, "package name cannot be empty", "@team/my-package")
	}
	if strings.ContainsRune(name, 0) || strings.Contains(name, "..") || strings.Contains(name, "\\") {
		return model.ConfigurationError(field, "package name contains unsafe characters: "+name, "@team/my-package")
	}
	if strings.HasPrefix(name, "@") {
		rest := name[1:]
		if rest == "" {
			return model.ConfigurationError(field, "invalid online package name format: "+name, "@team/my-package")
		}
		return nil
	}
	return validateSafeName(field, name)
}

// validateDescription enforces the common §4.2 bound on free-text
// description fields.
func validateDescription(field string, desc *string) *model.Error {
	if desc == nil {
		return nil
	}
	if *desc != strings.TrimSpace(*desc) {
		return model.ConfigurationError(field, "description must not have leading/trailing whitespace", "a short summary")
	}
	if len(*desc) > 500 {
		return model.ConfigurationError(field, "description is too long (max 500 characters)", "a short summary")
	}
	return nil
}

// validateScripts enforces §4.2's script rule: non-empty,
// whitespace-free names obeying the safe-name rule, non-empty
// commands.
func validateScripts(scripts map[string]string) *model.Error {
	for name, command := range scripts {
		if strings.TrimSpace(name) == "" {
			return model.ConfigurationError("scripts", "script name cannot be empty", "build: tsc")
		}
		if strings.ContainsFunc(name, func(r rune) bool { return r == ' ' || r == '\t' || r == '\n' }) {
			return model.ConfigurationError("scripts", "script name cannot contain whitespace: "+name, "build: tsc")
		}
		if strings.TrimSpace(command) == "" {
			return model.ConfigurationError("scripts."+name, "script command cannot be empty for script '"+name+"'", "tsc --build")
		}
		if err := validateSafeName("scripts", name); err != nil {
			return err
		}
	}
	return nil
}

// validateTag enforces §4.2's tag-charset rule.
func validateTag(tag string) *model.Error {
	if strings.TrimSpace(tag) == "" {
		return model.ConfigurationError("tags", "tag cannot be empty", "frontend")
	}
	for _, r := range tag {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return model.ConfigurationError("tags", "tag '"+tag+"' contains invalid characters; only lowercase alphanumeric and hyphens allowed", "frontend")
		}
	}
	if strings.HasPrefix(tag, "-") || strings.HasSuffix(tag, "-") {
		return model.ConfigurationError("tags", "tag '"+tag+"' cannot start or end with a hyphen", "frontend")
	}
	if len(tag) > 50 {
		return model.ConfigurationError("tags", "tag '"+tag+"' is too long (max 50 characters)", "frontend")
	}
	return nil
}

// validateSemverLiteral enforces §4.2's mandatory three-part numeric
// package version (dependency version requirements are a separate,
// more permissive grammar handled by model.ParseVersionRequirement).
func validateSemverLiteral(version string) *model.Error {
	if strings.TrimSpace(version) == "" {
		return model.ConfigurationError("version", "package version cannot be empty", "1.0.0")
	}
	parts := strings.Split(version, ".")
	if len(parts) != 3 {
		return model.ConfigurationError("version", "package version must follow semver format (x.y.z): "+version, "1.0.0")
	}
	for _, part := range parts {
		if part == "" {
			return model.ConfigurationError("version", "invalid version number in '"+version+"'", "1.0.0")
		}
		for _, r := range part {
			if r < '0' || r > '9' {
				return model.ConfigurationError("version", "invalid version number in '"+version+"': '"+part+"'", "1.0.0")
			}
		}
	}
	return nil
}
