package plantuml

import (
	"strings"

	"github.com/archmap/archmap/pkg/metadata"
)

// BuildComponents renders the component diagrams: one per unit, plus the
// combined all-components diagram nesting every unit inside its service
// package and appending cross-service call edges resolved onto owning
// components.
func BuildComponents(projects []metadata.Project, deps []metadata.CallDependency, opts Options) map[string]string {
	opts.setDefaults()
	ix := metadata.NewIndex(projects)

	out := make(map[string]string)
	perTag := make(map[string]string)
	var order []string

	for _, p := range projects {
		diagram := Wrap(componentBody(p))
		perTag[p.Tag] = diagram
		order = append(order, p.Tag)
		out[DiagramKey(p.Tag, TypeComponents)] = diagram
	}

	out[KeyAllComponents] = nestInServices(order, perTag, ix, callEdgeBlock(projects, deps))
	return out
}

// componentBody emits one package block per module holding its components,
// then one "use" edge per intra-unit component dependency.
func componentBody(p metadata.Project) string {
	var b strings.Builder

	for _, mc := range p.Components {
		b.WriteString("package \"" + mc.Module + "\" { \n")
		for _, c := range mc.Components {
			b.WriteString("[\"" + c.Package + "\"] \n")
		}
		b.WriteString("}\n\n")
	}
	b.WriteString("\n")

	for _, mc := range p.Components {
		for _, c := range mc.Components {
			for _, dep := range c.DependsOn {
				b.WriteString("[\"" + c.Package + "\"] ..> [\"" + dep + "\"] : use \n")
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

// callEdgeBlock renders the resolved cross-service call edges appended to the
// all-components diagram. No dependencies yields an empty block.
func callEdgeBlock(projects []metadata.Project, deps []metadata.CallDependency) string {
	if len(deps) == 0 {
		return ""
	}

	known := KnownComponents(projects)
	var b strings.Builder
	for _, edge := range ResolveCallEdges(known, deps) {
		b.WriteString("[\"" + edge.From + "\"] ..> [\"" + edge.To + "\"] : call \n")
	}
	return b.String()
}
