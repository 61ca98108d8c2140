// Package ir provides the compute intermediate representation: the typed
// attribute system, named tensor values, operators, and the compute graph
// that owns them.
//
// This package contains the foundational layer. All other internal packages
// import ir; ir imports nothing internal. This keeps the IR free of circular
// dependencies.
//
// Key design constraints:
//   - Attribute kinds are fixed at construction and never mutate.
//   - The Graph is an arena: values and operators are addressed through
//     stable integer handles, never through pointers that container growth
//     could invalidate.
//   - The Graph is the sole owner of its operators and value table. Lowering
//     strategies and passes hold only transient references during a call.
package ir
