// Package mapper converts route definitions into visualization graphs.
//
// # Dispatch
//
// Each step kind is handled by a [Mapper] variant. A [Registry] holds the
// variants keyed by kind and dispatches every step, recursively, to the
// variant registered for its kind. Kinds without a variant fall through to
// [Default], which produces a leaf carrying the raw definition. Unknown kinds
// are never an error.
//
// # Paths
//
// A step mounted at path P places its ordered children at P/steps/0,
// P/steps/1, and so on. Named branch slots follow the same rule:
// a choice's when clauses sit at P/when/i and its otherwise at P/otherwise.
// When a child uses the single-key form ({log: {...}}), its kind is appended
// as one more segment (P/steps/0/log), so every node path also addresses the
// step inside the decoded document (see route.Select).
//
// # Groups
//
// Branch-bearing variants produce group nodes. An empty branch yields a
// group with no children.
//
// # Usage
//
//	def, _ := route.ParseOne(data)
//	g, err := mapper.BuildGraph(def)
//	n := g.Lookup("route/from/steps/0/choice")
package mapper
