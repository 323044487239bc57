package plantuml

import (
	"strings"

	"github.com/archmap/archmap/pkg/metadata"
)

// Diagram type names, used in per-unit output keys and instrumentation.
const (
	TypeModules    = "modules"
	TypeComponents = "components"
	TypeSystems    = "systems"
	TypeServices   = "services"
)

// Output keys of the singleton and combined diagrams.
const (
	KeyAllModules    = "all_modules.txt"
	KeyAllComponents = "all_components.txt"
	KeySystems       = "systems.txt"
	KeyServices      = "services.txt"
)

// DiagramKey returns the output key for one unit's diagram of the given type,
// for example DiagramKey("inv", TypeModules) == "inv_plantUML_modules.txt".
func DiagramKey(tag, diagramType string) string {
	return tag + "_plantUML_" + diagramType + ".txt"
}

// SplitKey splits an output key into name and extension on the first dot.
// Every key emitted by the builders contains one.
func SplitKey(key string) (name, ext string) {
	name, ext, _ = strings.Cut(key, ".")
	return name, ext
}

// serviceLabel returns the package label wrapping one unit's sub-diagram in
// the combined diagrams, falling back to the tag when the unit has no
// registered project name.
func serviceLabel(ix *metadata.Index, tag string) string {
	if name, ok := ix.ProjectName(tag); ok {
		return "service: " + name
	}
	return "service: " + tag
}
