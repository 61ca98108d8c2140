// Package frontend parses source-graph description files into the in-memory
// representation consumed by lowering.
//
// Two encodings are supported: CUE (the richer format, with positions on
// every node for diagnostics) and YAML. Both describe the same model —
// a graph name, the declared value table, and the operator nodes:
//
//	graph: {
//		name: "demo"
//		values: [
//			{name: "x", dtype: "float32", dims: [1, 3]},
//			{name: "y", dtype: "float32", dims: [1, 3]},
//		]
//		nodes: [
//			{kind: "Abs", inputs: ["x"], outputs: ["y"]},
//		]
//	}
package frontend
