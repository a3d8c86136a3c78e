// Package mapping reads data-mapper documents and mapping trees and turns
// them into visualization graphs and link correlations.
//
// # Documents
//
// A [Document] is a field tree: a message body or parameter on the source
// side, or the body being produced on the target side. Its root is a
// namespace path, "<kind>:<id>://", and fields extend it:
//
//	sourceBody:Order://
//	sourceBody:Order://order
//	sourceBody:Order://order/id
//
// # Mapping Trees
//
// A [Tree] describes how the target document is filled. Its items mirror the
// target fields and may wrap them in conditionals (if, choose with when and
// otherwise, for-each). A conditional takes its own path segment,
// "<kind>-<n>", so fields under it fold to it when it is collapsed:
//
//	version: "1"
//	target: Invoice
//	sources:
//	  body: Order
//	items:
//	  - field: invoice
//	    items:
//	      - field: ref
//	        from: [order/id]
//	      - if: "order/total > 100"
//	        from: [order/total]
//	        items:
//	          - field: priority
//	            from: ["$Priority/level"]
//
// Source references are relative to the source body unless they start with
// "$name/" (a parameter) or carry a namespace of their own.
//
// [Tree.Correlations] lists every (source, target) pair in tree order and
// makes a Tree a links.Walker. [Tree.TargetGraph] merges the target document
// with the mapping items so the conditionals appear as groups.
package mapping
