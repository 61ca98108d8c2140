// Package compiler drives a full compilation session: it lowers a parsed
// source graph into a compute graph, runs the configured transformation
// passes over the result, and records an audit trail of what happened.
//
// A session is identified by a UUIDv7 token. Every lowering decision and
// pass verdict is written to the audit store (when one is configured) under
// that token, so a finished or failed compilation can be reconstructed
// after the fact.
package compiler
