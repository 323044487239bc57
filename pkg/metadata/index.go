package metadata

import "strings"

// Index provides constant-time, case-insensitive lookups over one metadata
// collection. Build one per generation run with NewIndex; the builders use it
// for every tag-to-display-name resolution instead of rescanning the
// collection.
type Index struct {
	projectNames map[string]string            // folded project tag → project name
	moduleNames  map[string]map[string]string // folded project tag → folded module tag → module name
}

// NewIndex builds lookup tables for the given projects. When two entries fold
// to the same key the first one wins, matching the scan order the lookups
// replace.
func NewIndex(projects []Project) *Index {
	ix := &Index{
		projectNames: make(map[string]string, len(projects)),
		moduleNames:  make(map[string]map[string]string, len(projects)),
	}

	for _, p := range projects {
		tag := strings.ToLower(p.Tag)
		if _, ok := ix.projectNames[tag]; !ok {
			ix.projectNames[tag] = p.Name
		}

		if _, ok := ix.moduleNames[tag]; !ok {
			modules := make(map[string]string, len(p.Modules))
			for _, m := range p.Modules {
				mtag := strings.ToLower(m.Tag)
				if _, ok := modules[mtag]; !ok {
					modules[mtag] = m.Name
				}
			}
			ix.moduleNames[tag] = modules
		}
	}

	return ix
}

// ProjectName returns the display name registered for a project tag.
func (ix *Index) ProjectName(tag string) (string, bool) {
	name, ok := ix.projectNames[strings.ToLower(tag)]
	return name, ok
}

// ModuleName returns the display name of a module within a project, falling
// back to the module tag when no name is registered.
func (ix *Index) ModuleName(projectTag, moduleTag string) string {
	if modules, ok := ix.moduleNames[strings.ToLower(projectTag)]; ok {
		if name, ok := modules[strings.ToLower(moduleTag)]; ok {
			return name
		}
	}
	return moduleTag
}
