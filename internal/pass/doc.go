// Package pass defines the graph mutation protocol: named transformations
// that consume a source graph and a destination compute graph, mutate the
// destination in place, and report a change verdict.
//
// Passes run strictly sequentially, one graph per goroutine; nothing in this
// package locks. A failed pass must leave the destination graph in a
// consumable (even if partially mutated) state — the protocol guarantees no
// rollback, so passes that mutate incrementally should prefer idempotent
// sub-steps that are safe to abandon midway.
//
// Target-specific passes are usually GraphBuildingPass values: they walk the
// destination graph's operators in creation order and dispatch each one
// through a Visitor, a per-kind handler table. Exactly one handler runs per
// operator; kinds without a handler follow the visitor's explicit default
// policy (skip or fail).
package pass
