// Package icons resolves display icons for route steps.
//
// Icons are descriptive metadata attached to visualization nodes once, at
// construction time. The editor front-end maps a [Ref] to an actual image;
// this package only decides which key a step gets.
package icons

import "strings"

// Category tags the catalog a step kind comes from.
type Category string

const (
	EIP       Category = "eip"
	Component Category = "component"
	Kamelet   Category = "kamelet"
	Entity    Category = "entity"
)

// Ref identifies an icon, e.g. "component/log" or "eip/choice".
type Ref string

// Generic is returned for kinds without a specific icon.
const Generic Ref = "generic"

// Resolver maps a step kind and its category to an icon.
type Resolver interface {
	Resolve(kind string, category Category) Ref
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(kind string, category Category) Ref

// Resolve calls f.
func (f ResolverFunc) Resolve(kind string, category Category) Ref { return f(kind, category) }

// known lists kinds with a dedicated icon per category.
var known = map[Category]map[string]bool{
	EIP: set(
		"aggregate", "choice", "circuitBreaker", "doCatch", "doFinally", "doTry",
		"enrich", "filter", "from", "idempotentConsumer", "loadBalance", "log",
		"loop", "marshal", "multicast", "onFallback", "otherwise", "pipeline",
		"pollEnrich", "process", "recipientList", "removeHeaders", "resequence",
		"route", "routingSlip", "saga", "setBody", "setHeader", "setProperty",
		"setVariable", "split", "step", "threads", "throttle", "to", "toD",
		"transacted", "transform", "unmarshal", "when", "wireTap",
	),
	Entity: set(
		"beans", "errorHandler", "intercept", "interceptFrom", "interceptSendToEndpoint",
		"onCompletion", "onException", "rest", "restConfiguration", "routeConfiguration",
		"route", "routeTemplate",
	),
}

func set(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// TableResolver is the default resolver. Components and kamelets always get
// a per-name icon; EIPs and entities get one only when listed. Overrides take
// precedence over everything else and are keyed by kind.
type TableResolver struct {
	Overrides map[string]Ref
}

// NewTableResolver returns a resolver with optional per-kind overrides.
func NewTableResolver(overrides map[string]Ref) *TableResolver {
	return &TableResolver{Overrides: overrides}
}

// Resolve implements Resolver.
func (r *TableResolver) Resolve(kind string, category Category) Ref {
	if ref, ok := r.Overrides[kind]; ok {
		return ref
	}
	if kind == "" {
		return Generic
	}
	switch category {
	case Component:
		return Ref(string(Component) + "/" + kind)
	case Kamelet:
		return Ref(string(Kamelet) + "/" + strings.TrimPrefix(kind, "kamelet:"))
	}
	if known[category][kind] {
		return Ref(string(category) + "/" + kind)
	}
	return Generic
}

// Default is the resolver used when none is supplied.
var Default Resolver = NewTableResolver(nil)
