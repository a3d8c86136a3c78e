package mapper

import (
	"github.com/Ortofta/kaoto/pkg/route"
	"github.com/Ortofta/kaoto/pkg/viz"
)

// Default handles kinds without a dedicated variant: a leaf node holding the
// raw definition.
type Default struct{ *Base }

func (Default) Kind() string { return "" }

func (m Default) Convert(path string, lookup route.LookupResult, def route.Definition) *viz.Node {
	return m.Leaf(path, lookup, def)
}

// Branch is a group whose children are its steps. when, otherwise, doCatch,
// doFinally, onFallback and the steps-bearing EIPs use it.
type Branch struct {
	*Base
	kind string
}

func (m Branch) Kind() string { return m.kind }

func (m Branch) Convert(path string, lookup route.LookupResult, def route.Definition) *viz.Node {
	n := m.Group(path, lookup, def)
	addAll(n, m.ChildrenFromBranch(path, def))
	return n
}

// Choice mounts its when clauses and an optional otherwise. Clauses may be
// listed under steps or, in Camel form, under the when and otherwise slots.
type Choice struct{ *Base }

func (Choice) Kind() string { return "choice" }

func (m Choice) Convert(path string, lookup route.LookupResult, def route.Definition) *viz.Node {
	n := m.Group(path, lookup, def)
	addAll(n, m.ChildrenFromBranch(path, def))
	addAll(n, m.ChildrenFromList(path, def, "when", "when"))
	if c := m.ChildFromSlot(path, def, "otherwise", "otherwise"); c != nil {
		n.AddChild(c)
	}
	return n
}

// DoTry mounts its steps, then its catch clauses, then an optional finally.
type DoTry struct{ *Base }

func (DoTry) Kind() string { return "doTry" }

func (m DoTry) Convert(path string, lookup route.LookupResult, def route.Definition) *viz.Node {
	n := m.Group(path, lookup, def)
	addAll(n, m.ChildrenFromBranch(path, def))
	addAll(n, m.ChildrenFromList(path, def, "doCatch", "doCatch"))
	if c := m.ChildFromSlot(path, def, "doFinally", "doFinally"); c != nil {
		n.AddChild(c)
	}
	return n
}

// CircuitBreaker mounts its steps and an optional fallback.
type CircuitBreaker struct{ *Base }

func (CircuitBreaker) Kind() string { return "circuitBreaker" }

func (m CircuitBreaker) Convert(path string, lookup route.LookupResult, def route.Definition) *viz.Node {
	n := m.Group(path, lookup, def)
	addAll(n, m.ChildrenFromBranch(path, def))
	if c := m.ChildFromSlot(path, def, "onFallback", "onFallback"); c != nil {
		n.AddChild(c)
	}
	return n
}

// Route is a group holding its source. Explicit-form routes may instead list
// their steps directly.
type Route struct{ *Base }

func (Route) Kind() string { return "route" }

func (m Route) Convert(path string, lookup route.LookupResult, def route.Definition) *viz.Node {
	n := m.Group(path, lookup, def)
	if c := m.ChildFromSlot(path, def, "from", "from"); c != nil {
		n.AddChild(c)
	}
	addAll(n, m.ChildrenFromBranch(path, def))
	return n
}

// branchKinds mount their steps and nothing else.
var branchKinds = []string{
	// branch clauses
	"when", "otherwise", "doCatch", "doFinally", "onFallback",
	// route source
	"from",
	// steps-bearing EIPs
	"aggregate", "filter", "idempotentConsumer", "loadBalance", "loop",
	"multicast", "pipeline", "recipientList", "resequence", "saga", "split",
	"step", "threads", "transacted",
	// entities
	"intercept", "interceptFrom", "interceptSendToEndpoint", "onCompletion",
	"onException", "routeConfiguration",
}

func builtins(b *Base) []Mapper {
	ms := []Mapper{
		Choice{b},
		DoTry{b},
		CircuitBreaker{b},
		Route{b},
	}
	for _, k := range branchKinds {
		ms = append(ms, Branch{Base: b, kind: k})
	}
	return ms
}
