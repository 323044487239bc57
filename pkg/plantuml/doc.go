// Package plantuml assembles PlantUML diagram text from collected metadata.
//
// This package is the diagram-assembly engine: pure functions that transform
// metadata collections into textual diagram descriptions at four levels of
// granularity.
//
// # Diagram Flavors
//
//   - [BuildModules]: module-to-module dependencies, one diagram per unit plus
//     a combined all-modules diagram
//   - [BuildComponents]: components nested in their modules with intra-unit
//     "use" edges, plus a combined all-components diagram carrying resolved
//     cross-service "call" edges
//   - [BuildSystems]: one diagram of systems and their subsystems
//   - [BuildServices]: one diagram of systems, subsystems, and services with
//     call edges labeled by method and path
//
// Each builder returns a map from output key (for example
// "inv_plantUML_modules.txt" or "services.txt") to complete diagram text.
// Builders are deterministic: the same input always produces byte-identical
// output.
//
// # Dependency Resolution
//
// Cross-service calls are recorded against fully qualified package
// identifiers. [ResolveComponent] maps such an identifier onto the owning
// component via longest-prefix matching over the known component set, falling
// back to the EXTERN sentinel. [ResolveCallEdges] applies the resolver to
// both sides of every call and deduplicates the resulting component pairs.
//
// # Wrapper
//
// Every diagram shares a fixed preamble and terminator ([Begin], [End]).
// [Wrap] and [Strip] convert between bare bodies and complete diagrams; the
// combined diagrams strip each unit's wrapper before nesting it.
//
// This package performs no I/O. Loading metadata, persisting diagram text,
// and rendering images belong to the surrounding packages.
package plantuml
