package metadata

// =============================================================================
// Build Metadata (maven-metadata.json)
// =============================================================================

// Project is one collected metadata unit: a single analyzed build unit and
// everything known about its modules and components.
//
// Tag is the unique short identifier joining a unit to its module dependency
// map and component lists. ModuleDependencies distinguishes "no data" (nil)
// from "collected but empty" (non-nil empty map); a nil map excludes the unit
// from the module diagram.
type Project struct {
	Tag       string `json:"tag"`
	Name      string `json:"projectName"`
	System    string `json:"system"`
	Subsystem string `json:"subsystem"`

	// ModuleDependencies maps a module tag to the tags of the modules it
	// depends on. nil means dependency data was never collected.
	ModuleDependencies map[string][]string `json:"moduleDependencies"`

	Modules    []Module           `json:"modules"`
	Components []ModuleComponents `json:"components"`
}

// Module pairs a module tag with its display name.
type Module struct {
	Tag  string `json:"tag"`
	Name string `json:"moduleName"`
}

// ModuleComponents lists the components contained in one module.
type ModuleComponents struct {
	Module     string      `json:"moduleName"`
	Components []Component `json:"components"`
}

// Component is one architectural component, identified by its package name.
// Package names are the keys for longest-prefix dependency resolution.
type Component struct {
	Package   string   `json:"packageName"`
	DependsOn []string `json:"dependsOn"`
}

// =============================================================================
// API Metadata (api-metadata.json)
// =============================================================================

// API describes the HTTP surface of one service: the endpoints it provides
// and the remote endpoints it consumes.
type API struct {
	Service  string     `json:"serviceName"`
	Provided []Endpoint `json:"provided"`
	Consumed []Endpoint `json:"consumed"`
}

// Endpoint is one HTTP-like endpoint descriptor. Service names the target
// service on consumed entries; an empty Service on a consumed entry means the
// target was not declared and is treated as external.
type Endpoint struct {
	Service string `json:"serviceName,omitempty"`
	Package string `json:"packageName"`
	Method  string `json:"method"`
	Path    string `json:"path"`
}

// =============================================================================
// Derived Structures
// =============================================================================

// DefaultExternalService is the sentinel display name given to call targets
// that lie outside the analyzed system. Matching against it is
// case-insensitive.
const DefaultExternalService = "EXTERNAL"

// CallDependency is one observed service-to-service call, derived from API
// metadata. ServicePackage and DependsOnPackage identify caller and callee
// for component resolution; Service and DependsOn are display names for the
// service diagram. DependsOn may carry an external-service sentinel rather
// than a known service name.
type CallDependency struct {
	ServicePackage   string
	DependsOnPackage string
	Service          string
	DependsOn        string
	Method           string
	Path             string
}
