// Package graph provides the wire format for visualization graphs and
// link extraction results.
//
// This package defines the canonical JSON shape of kaoto's data, used by
// `kaoto graph --json`, `kaoto links --json`, the HTTP API of `kaoto serve`
// and the artifact cache.
//
// # Architecture
//
// The package sits at the serialization boundary between internal
// representations and external formats:
//
//   - [Graph], [Links]: Serialization types (this package)
//   - pkg/viz.Graph: Internal visualization tree
//   - pkg/links.Result: Internal extraction outcome
//
// Use [FromViz]/[ToViz] and [FromResult] to convert between them.
//
// # Graph Serialization
//
// Graphs use a node-link format. Nodes are listed in pre-order and edges
// are containment edges from parent to child, in child order:
//
//	{
//	  "root": "route",
//	  "nodes": [
//	    {"path": "route", "kind": "route", "group": true},
//	    {"path": "route/from", "kind": "from", "component": "timer", "parent": "route"}
//	  ],
//	  "edges": [{"from": "route", "to": "route/from"}]
//	}
//
// Common operations:
//
//	data, _ := graph.MarshalGraph(g)        // viz.Graph → []byte
//	g, _ := graph.ReadGraph(r)              // io.Reader → viz.Graph
//	graph.WriteGraphFile(g, "route.json")   // viz.Graph → File
//
// Definitions are not serialized. A graph read back has the same paths,
// labels, icons and metadata, and zero-valued [viz.NodeData.Definition].
//
// # Links Serialization
//
// [Links] carries every connection with both its declared paths and the
// anchors it folded to, the drawn line relative to the canvas origin, and
// the dropped correlations.
package graph
