package plantuml

import (
	"sort"
	"strings"

	"github.com/archmap/archmap/pkg/metadata"
)

// BuildModules renders the module dependency diagrams: one per unit with
// collected dependency data, plus the combined all-modules diagram nesting
// every rendered unit inside its service package. Units whose dependency data
// was never collected are skipped with a note; units with collected but empty
// data render as an empty diagram.
func BuildModules(projects []metadata.Project, opts Options) map[string]string {
	opts.setDefaults()
	ix := metadata.NewIndex(projects)

	out := make(map[string]string)
	perTag := make(map[string]string)
	var order []string

	for _, p := range projects {
		if p.ModuleDependencies == nil {
			opts.Logger.Info("no module dependency data", "project", p.Name)
			continue
		}

		diagram := Wrap(moduleBody(p, ix))
		perTag[p.Tag] = diagram
		order = append(order, p.Tag)
		out[DiagramKey(p.Tag, TypeModules)] = diagram
	}

	out[KeyAllModules] = nestInServices(order, perTag, ix, "")
	return out
}

// moduleBody emits one declaration per module followed by one edge per
// recorded dependency. Module tags map to display names through the index.
// Map keys are iterated in sorted order to keep output deterministic.
func moduleBody(p metadata.Project, ix *metadata.Index) string {
	tags := make([]string, 0, len(p.ModuleDependencies))
	for tag := range p.ModuleDependencies {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	var b strings.Builder
	for _, tag := range tags {
		b.WriteString("package \"" + ix.ModuleName(p.Tag, tag) + "\" {}\n")
	}
	b.WriteString("\n")

	for _, tag := range tags {
		for _, dep := range p.ModuleDependencies[tag] {
			b.WriteString("\"" + ix.ModuleName(p.Tag, tag) + "\" --> \"" + ix.ModuleName(p.Tag, dep) + "\"\n")
		}
	}

	return b.String()
}

// nestInServices builds a combined diagram embedding each unit's bare
// sub-diagram inside a package labeled with its service name. extra is
// appended after the last service block, before the terminator.
func nestInServices(tags []string, diagrams map[string]string, ix *metadata.Index, extra string) string {
	var b strings.Builder
	b.WriteString(Begin)

	for _, tag := range tags {
		b.WriteString("package \"" + serviceLabel(ix, tag) + "\" { \n")
		b.WriteString(Strip(diagrams[tag]))
		b.WriteString("}\n\n")
	}

	b.WriteString(extra)
	b.WriteString(End)
	return b.String()
}
