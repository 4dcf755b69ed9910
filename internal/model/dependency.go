package model

// Conditions gates a DependencySpec to a subset of platforms,
// architectures or environments (§3). A nil *Conditions always admits.
type Conditions struct {
	Platform    []string
	Arch        []string
	Environment []string
}

func admits(values []string, value string) bool {
	if len(values) == 0 {
		return true
	}
	if value == "" {
		return false
	}
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

// Admits reports whether ctx's platform/arch/environment are each
// included in the matching condition set (§4.1 "applicable" rule: a
// spec is applicable iff every condition set it names includes the
// context's value).
func (c *Conditions) Admits(ctx ResolutionContext) bool {
	if c == nil {
		return true
	}
	return admits(c.Platform, ctx.Platform) && admits(c.Arch, ctx.Arch) && admits(c.Environment, ctx.Environment)
}

// DependencySpec is a declared edge to some package (§3).
type DependencySpec struct {
	ID          PackageId
	Requirement VersionRequirement
	Optional    bool
	DevOnly     bool
	Conditions  *Conditions
	FeatureList []string
}

// Applicable reports whether this spec should be considered in ctx,
// per §4.1: "include_dev ⇒ true | dev_only=false", "include_optional ⇒
// true | optional=false", plus condition admission.
func (d DependencySpec) Applicable(ctx ResolutionContext) bool {
	if d.DevOnly && !ctx.IncludeDev {
		return false
	}
	if d.Optional && !ctx.IncludeOptional {
		return false
	}
	return d.Conditions.Admits(ctx)
}
