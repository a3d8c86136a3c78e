// Package links turns mapping correlations into renderable connections.
//
// A correlation says that a target field is computed from a source field.
// Either end may be hidden, for example because a container above it is
// collapsed. [Extract] folds each end up to its nearest visible ancestor
// (see nodepath.ClosestResolvable) and keeps the correlation only when both
// ends find one. The connection keeps the original paths for identity and
// takes its geometry from the folded ends.
//
// Visibility and geometry come from an injected [Oracle]. The package ships
// one implementation, [TreeView], which lays trees out as indented rows and
// tracks collapsed containers; renderers with their own layout implement the
// interface themselves.
//
// [Linker] bundles a correlation source with an oracle and exposes
// [Linker.Refresh], the single recompute entry point. Refresh does a full
// pass every time and is idempotent.
package links
