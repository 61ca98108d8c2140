// Package source models the externally parsed operator graph consumed by
// lowering. The front ends in internal/frontend produce this representation;
// the core only reads it and never validates the encoding it came from.
package source
