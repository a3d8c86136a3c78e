// Package viz provides the visualization graph: an ordered tree of nodes,
// each addressed by a hierarchical path.
//
// # Overview
//
// A route definition is compiled into a tree of [Node] values. Every node
// has a non-empty path; children of a group extend the group path by one or
// more segments (see package nodepath). Nodes store no parent pointer:
// parenthood is derived from paths through [Graph.ParentOf].
//
// # Construction
//
// Trees are built bottom-up with [NewNode] and [Node.AddChild], typically by
// the mapper package. [NewGraph] indexes a finished tree once, which gives
// O(1) [Graph.Lookup]. A [Graph] is immutable after construction and safe
// for concurrent reads.
//
// # Traversal
//
// [Node.Walk] and [Graph.Walk] visit nodes depth-first in pre-order, with
// children in insertion order. [Graph.Paths] returns the same order.
package viz
