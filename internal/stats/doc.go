// Package stats is a JSON-file-backed group/entry store used for compiler
// diagnostics counters and tuning tables.
//
// A Statistics value wraps a tree of named Groups. Each group holds scalar
// entries (integers, floats, strings, booleans) and nested groups. Opened
// read-write, the tree is written back to its file on Sync.
//
// There is no global instance. Anything that needs counters receives an
// explicit *Group, constructed once per compilation and threaded through the
// pipeline, so concurrent independent compilations never share mutable
// state.
package stats
