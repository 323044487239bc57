package plantuml

import (
	"strings"

	"github.com/archmap/archmap/pkg/metadata"
)

// BuildServices renders the single service diagram: systems holding
// subsystems holding service packages, followed by one edge per
// cross-service call labeled with its method and path. When any call targets
// an external service, a lone "external" package is declared before the
// edges. A nil dependency list omits the dependency section entirely.
func BuildServices(projects []metadata.Project, deps []metadata.CallDependency, opts Options) map[string]string {
	opts.setDefaults()
	grouping := metadata.GroupBySystem(projects)

	var b strings.Builder
	b.WriteString(Begin)

	for _, sys := range grouping.Systems {
		b.WriteString("package \"" + sys.Name + "\" {\n")
		for _, sub := range sys.Subsystems {
			b.WriteString("package \"" + sub.Name + "\" {\n")
			for _, svc := range sub.Services {
				b.WriteString("package \"" + svc + "\" {}\n")
			}
			b.WriteString("}\n")
		}
		b.WriteString("}\n\n")
	}

	if deps != nil {
		if hasExternalTarget(deps, opts.ExternalService) {
			b.WriteString("package \"external\" {}\n")
		}
		b.WriteString(callLines(deps, opts))
	}

	b.WriteString(End)
	return map[string]string{KeyServices: b.String()}
}

// hasExternalTarget reports whether any call targets the literal "external"
// service or the configured external sentinel.
func hasExternalTarget(deps []metadata.CallDependency, external string) bool {
	for _, dep := range deps {
		if strings.EqualFold(dep.DependsOn, "external") || strings.EqualFold(dep.DependsOn, external) {
			return true
		}
	}
	return false
}

// callLines renders one labeled edge per call dependency.
func callLines(deps []metadata.CallDependency, opts Options) string {
	if len(deps) == 0 {
		opts.Logger.Info("no dependencies between services found")
		return ""
	}

	var b strings.Builder
	for _, dep := range deps {
		b.WriteString("\"" + dep.Service + "\"-->\"" + dep.DependsOn + "\" : \"" + dep.Method + " : " + dep.Path + "\"\n")
	}
	return b.String()
}
