// Package connector derives cross-service call dependencies from collected
// API metadata.
//
// Every consumed endpoint in an API unit becomes one [metadata.CallDependency]
// edge. The target service is matched case-insensitively against the other
// API units; consumed endpoints that name no target, or a target outside the
// analyzed system, are attributed to the external-service sentinel so the
// diagrams can still show the call leaving the system.
package connector

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/archmap/archmap/pkg/metadata"
)

// Options configure dependency derivation.
type Options struct {
	// ExternalService overrides the sentinel name assigned to calls whose
	// target lies outside the analyzed system. Empty selects
	// [metadata.DefaultExternalService].
	ExternalService string

	// Logger receives diagnostic notes. nil discards them.
	Logger *log.Logger
}

func (o *Options) setDefaults() {
	if o.ExternalService == "" {
		o.ExternalService = metadata.DefaultExternalService
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ServiceConnector matches consumed endpoints against the providing
// services of the same metadata collection.
type ServiceConnector struct {
	externalService string
	logger          *log.Logger
}

// NewServiceConnector creates a connector with the given options.
func NewServiceConnector(opts Options) *ServiceConnector {
	opts.setDefaults()
	return &ServiceConnector{
		externalService: opts.ExternalService,
		logger:          opts.Logger,
	}
}

// Connect derives one call dependency per consumed endpoint.
//
// The callee package is taken from the matching provided endpoint (same
// method and path) of the target service. When no endpoint matches, the
// target's first provided package stands in; when the target is unknown or
// provides nothing, the callee package stays empty and component-level
// resolution treats the call as external.
func (c *ServiceConnector) Connect(ctx context.Context, apis []metadata.API) ([]metadata.CallDependency, error) {
	var deps []metadata.CallDependency
	for _, api := range apis {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		for _, consumed := range api.Consumed {
			dep := metadata.CallDependency{
				Service:        api.Service,
				ServicePackage: consumed.Package,
				DependsOn:      consumed.Service,
				Method:         consumed.Method,
				Path:           consumed.Path,
			}
			if dep.DependsOn == "" {
				dep.DependsOn = c.externalService
			}
			if provider, ok := findProvider(apis, consumed.Service); ok {
				dep.DependsOnPackage = calleePackage(provider, consumed)
			}
			deps = append(deps, dep)
		}
	}
	c.logger.Info("derived service connections", "count", len(deps))
	return deps, nil
}

// findProvider locates the API unit providing the named service.
// Matching is case-insensitive; an empty name never matches.
func findProvider(apis []metadata.API, service string) (metadata.API, bool) {
	if service == "" {
		return metadata.API{}, false
	}
	for _, api := range apis {
		if strings.EqualFold(api.Service, service) {
			return api, true
		}
	}
	return metadata.API{}, false
}

// calleePackage picks the provider package owning the consumed endpoint.
func calleePackage(provider metadata.API, consumed metadata.Endpoint) string {
	for _, p := range provider.Provided {
		if strings.EqualFold(p.Method, consumed.Method) && p.Path == consumed.Path {
			return p.Package
		}
	}
	if len(provider.Provided) > 0 {
		return provider.Provided[0].Package
	}
	return ""
}
