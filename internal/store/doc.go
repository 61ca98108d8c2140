// Package store provides durable storage for compilation audit logs.
//
// Each compilation session is recorded with its session token, source graph
// name, and final graph hash, together with the ordered list of lowering
// events (which strategy won each node, or why a node failed) and the
// ordered list of pass verdicts, so a finished or failed session can be
// inspected after the fact. Nothing in the IR/pass core depends on it.
//
// Uses SQLite with WAL mode for concurrent read access.
package store
