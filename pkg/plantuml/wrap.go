package plantuml

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/archmap/archmap/pkg/metadata"
)

// Fixed wrapper shared by every diagram. The preamble selects the UML2
// component style; nothing else about layout or styling is emitted.
const (
	// Begin opens a diagram.
	Begin = "@startuml\n skinparam componentStyle uml2\n\n"
	// End closes a diagram.
	End = "@enduml\n"
)

// Wrap surrounds a diagram body with the fixed preamble and terminator.
func Wrap(body string) string {
	return Begin + body + End
}

// Strip removes the preamble and terminator from a complete diagram,
// returning the bare body. Wrap(Strip(d)) == d for any wrapped diagram d.
func Strip(diagram string) string {
	diagram = strings.TrimPrefix(diagram, Begin)
	return strings.TrimSuffix(diagram, End)
}

// Options configure diagram assembly.
type Options struct {
	// ExternalService overrides the sentinel display name for calls leaving
	// the analyzed system. Empty selects [metadata.DefaultExternalService].
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
