package routemeta

import "strings"

var genericGroupSuffixes = []string{"Controller", "Handler"}

const asyncSuffix = "Async"

// ModuleName derives the permission module from a handler group name by
// stripping a generic suffix. Returns "" when nothing remains, in which
// case the group has no derivable permissions at all.
func ModuleName(group string) string {
	for _, suffix := range genericGroupSuffixes {
		if strings.HasSuffix(group, suffix) {
			return strings.TrimSuffix(group, suffix)
		}
	}
	return group
}

// ActionName derives the permission action from a handler method name.
// An explicit override replaces the method name before the async suffix
// is stripped, so overrides go through the same suffix rule.
func ActionName(method, override string) string {
	name := method
	if override != "" {
		name = override
	}
	return strings.TrimSuffix(name, asyncSuffix)
}

// Name returns the convention-derived permission name
// "<Module>.<Action>" for a route, or "" when the module collapses to
// nothing.
func Name(m *Meta) string {
	module := ModuleName(m.Group)
	if module == "" {
		return ""
	}
	return module + "." + ActionName(m.Method, m.ActionName)
}
