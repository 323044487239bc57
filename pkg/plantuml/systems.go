package plantuml

import (
	"strings"

	"github.com/archmap/archmap/pkg/metadata"
)

// BuildSystems renders the single system diagram: each system as a package
// holding its distinct subsystems, in first-seen order.
func BuildSystems(projects []metadata.Project) map[string]string {
	grouping := metadata.GroupBySystem(projects)

	var b strings.Builder
	b.WriteString(Begin)

	for _, sys := range grouping.Systems {
		b.WriteString("package \"" + sys.Name + "\" {\n")
		for _, sub := range sys.Subsystems {
			b.WriteString("package \"" + sub.Name + "\" {}\n")
		}
		b.WriteString("}\n\n")
	}

	b.WriteString(End)
	return map[string]string{KeySystems: b.String()}
}
