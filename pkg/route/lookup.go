package route

import "strings"

// LookupResult names what a step is: the processor that runs it and, for
// endpoint steps, the component addressed by its URI.
type LookupResult struct {
	ProcessorName string
	ComponentName string
}

// IsEndpoint reports whether the step addresses a component.
func (r LookupResult) IsEndpoint() bool { return r.ComponentName != "" }

// endpointKinds are steps whose target is a component URI.
var endpointKinds = map[string]bool{
	"from":       true,
	"to":         true,
	"toD":        true,
	"wireTap":    true,
	"enrich":     true,
	"pollEnrich": true,
	"poll":       true,
}

func isEndpoint(kind string) bool { return endpointKinds[kind] }

// Lookup returns the processor and component names of d.
func (d Definition) Lookup() LookupResult {
	res := LookupResult{ProcessorName: d.kind}
	if isEndpoint(d.kind) {
		res.ComponentName = ComponentName(d.String("uri"))
	}
	return res
}

// ComponentName extracts the component from an endpoint URI:
// "log:info?level=WARN" is "log", and kamelets keep their name,
// "kamelet:beer-source/x" is "kamelet:beer-source".
func ComponentName(uri string) string {
	scheme, rest, found := strings.Cut(uri, ":")
	if !found {
		return uri
	}
	if scheme == KameletScheme {
		name := rest
		if i := strings.IndexAny(name, "/?"); i >= 0 {
			name = name[:i]
		}
		return PrefixKamelet(name)
	}
	return scheme
}

// KameletScheme is the URI scheme of kamelet endpoints.
const KameletScheme = "kamelet"

// PrefixKamelet returns the endpoint URI for a kamelet name.
func PrefixKamelet(name string) string { return KameletScheme + ":" + name }

// IsKamelet reports whether a component name refers to a kamelet.
func IsKamelet(component string) bool {
	return strings.HasPrefix(component, KameletScheme+":")
}
