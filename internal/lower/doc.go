// Package lower translates source-graph nodes into compute-graph operators.
//
// Each Lower is a stateless strategy for one source operator kind: Match
// scores how well it applies to a node, Build materializes the operator in
// the destination graph. A Registry holds all registered strategies and
// selects the highest-scoring one per node, so a target-specific lower can
// outrank the standard one for the same kind simply by returning a higher
// score.
//
// Failure is split three ways, and the distinction matters:
//   - ErrNotApplicable is a soft decline ("cannot lower this occurrence");
//     the registry falls through to the next candidate.
//   - An exhausted candidate list is an UnsupportedError diagnostic carrying
//     the node's kind and position.
//   - A value name missing from the destination value table is the wiring
//     invariant violation (ir.UnknownValueError); it aborts the compilation.
package lower
