package store

import (
	"context"
	"fmt"
	"time"
)

// Lowering outcomes recorded per source node.
const (
	OutcomeLowered     = "lowered"
	OutcomeUnsupported = "unsupported"
	OutcomeAmbiguous   = "ambiguous"
	OutcomeError       = "error"
)

// LoweringEvent describes what happened to one source node during lowering.
type LoweringEvent struct {
	NodeIndex int
	NodeKind  string
	LowerName string // winning strategy, empty when nothing applied
	Outcome   string
	Detail    string // diagnostic text for non-lowered outcomes
}

// PassRun is one pass verdict within a compilation.
type PassRun struct {
	Seq    int
	PassID string
	Result string
	Error  string
}

// BeginCompilation records the start of a compilation session.
func (s *Store) BeginCompilation(ctx context.Context, id, graphName string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO compilations (id, graph_name, graph_hash, created_at)
		VALUES (?, ?, '', ?)
	`, id, graphName, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert compilation %s: %w", id, err)
	}
	return nil
}

// FinishCompilation stores the final graph hash for a session.
func (s *Store) FinishCompilation(ctx context.Context, id, graphHash string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE compilations SET graph_hash = ? WHERE id = ?
	`, graphHash, id)
	if err != nil {
		return fmt.Errorf("update compilation %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update compilation %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("update compilation %s: unknown session", id)
	}
	return nil
}

// RecordLoweringEvent appends one lowering event under the session, at the
// given sequence position.
func (s *Store) RecordLoweringEvent(ctx context.Context, compilationID string, seq int, ev LoweringEvent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO lowering_events (compilation_id, seq, node_index, node_kind, lower_name, outcome, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, compilationID, seq, ev.NodeIndex, ev.NodeKind, ev.LowerName, ev.Outcome, ev.Detail)
	if err != nil {
		return fmt.Errorf("insert lowering event %d: %w", seq, err)
	}
	return nil
}

// RecordPassRun appends one pass verdict under the session.
func (s *Store) RecordPassRun(ctx context.Context, compilationID string, run PassRun) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pass_runs (compilation_id, seq, pass_id, result, error)
		VALUES (?, ?, ?, ?, ?)
	`, compilationID, run.Seq, run.PassID, run.Result, run.Error)
	if err != nil {
		return fmt.Errorf("insert pass run %d: %w", run.Seq, err)
	}
	return nil
}
