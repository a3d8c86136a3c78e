// Package nodepath implements the path algebra shared by visualization graphs,
// data-mapper documents and the link folding logic.
//
// # Paths
//
// A path is a plain string made of "/"-separated segments. A document may root
// its paths in a namespace written as a scheme:
//
//	sourceBody:ShipOrder://                  document root
//	sourceBody:ShipOrder://order             field under the root
//	sourceBody:ShipOrder://order/id          nested field
//	route/from/steps/0/choice                route step (no scheme)
//
// [Parent] truncates to the last separator. A doubled separator ("//") is a
// namespace boundary: the boundary stays with the parent, so the parent of
// "doc://a" is "doc://", and the parent of "doc://" is the scheme token "doc".
//
// # Folding
//
// [ClosestResolvable] walks up from a path, inclusive, until a predicate
// accepts a candidate. The link extraction code uses it with a visibility
// predicate to fold collapsed fields onto their nearest visible ancestor.
// Malformed paths never cause an error or a loop: the walk stops when no
// parent exists or when [Parent] returns its input unchanged (e.g. "a//").
package nodepath
