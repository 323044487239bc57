package plantuml

import (
	"strings"

	"github.com/archmap/archmap/pkg/metadata"
)

// ExternComponent is the sentinel returned when no known component owns a
// package identifier.
const ExternComponent = "EXTERN"

// KnownComponents flattens every component package name in the collection,
// preserving input order. The result is the resolution domain for
// ResolveComponent.
func KnownComponents(projects []metadata.Project) []string {
	var names []string
	for _, p := range projects {
		for _, mc := range p.Components {
			for _, c := range mc.Components {
				names = append(names, c.Package)
			}
		}
	}
	return names
}

// ResolveComponent returns the known component owning the given package
// identifier: the longest known identifier that is a prefix of pkg, or
// ExternComponent when none matches. Equal-length candidates resolve to the
// first one encountered.
func ResolveComponent(known []string, pkg string) string {
	longest := ""
	found := false
	for _, c := range known {
		if strings.HasPrefix(pkg, c) && (!found || len(c) > len(longest)) {
			longest = c
			found = true
		}
	}
	if !found {
		return ExternComponent
	}
	return longest
}

// CallEdge is one resolved caller-to-callee component pair.
type CallEdge struct {
	From string
	To   string
}

// ResolveCallEdges maps call dependencies onto their owning components.
// Calls whose caller is not owned by any known component are dropped; the
// callee side may resolve to ExternComponent. Each distinct (caller, callee)
// pair appears once, in first-seen order.
func ResolveCallEdges(known []string, deps []metadata.CallDependency) []CallEdge {
	var edges []CallEdge
	seen := make(map[CallEdge]bool)

	for _, dep := range deps {
		from := ResolveComponent(known, dep.ServicePackage)
		if from == ExternComponent {
			continue
		}

		edge := CallEdge{From: from, To: ResolveComponent(known, dep.DependsOnPackage)}
		if seen[edge] {
			continue
		}
		seen[edge] = true
		edges = append(edges, edge)
	}

	return edges
}
