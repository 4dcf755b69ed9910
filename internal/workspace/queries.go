package workspace

import "github.com/saravenpi/knot/internal/config"

// DependenciesFor returns the effective package list for appName
// (§4.3): the project-level `apps.<name>` list takes precedence when
// present, otherwise the app's own `packages` field, otherwise empty.
// Duplicates are removed preserving first occurrence.
func (p *Project) DependenciesFor(appName string) []string {
	var raw []string
	if deps, ok := p.Config.Apps[appName]; ok && len(deps.GetPackages()) > 0 {
		raw = deps.GetPackages()
	} else if app, ok := p.Apps[appName]; ok {
		raw = app.Packages
	}
	return dedupe(raw)
}

func dedupe(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// TsAliasFor resolves the effective TypeScript alias prefix for
// appName (§4.3): first defined of the app's own ts_alias, the
// project-level `apps.<name>.ts_alias`, then the project-level
// ts_alias, with boolean `true` mapping to "#" and absence to "".
func (p *Project) TsAliasFor(appName string) string {
	var appAlias *config.TsAlias
	if app, ok := p.Apps[appName]; ok {
		appAlias = app.TsAlias
	}

	var appDepsAlias *config.TsAlias
	if deps, ok := p.Config.Apps[appName]; ok {
		appDepsAlias = deps.GetTsAlias()
	}

	return config.FirstTsAlias(appAlias, appDepsAlias, p.Config.TsAlias)
}
