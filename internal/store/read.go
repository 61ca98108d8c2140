package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Compilation is one recorded compilation session.
type Compilation struct {
	ID        string
	GraphName string
	GraphHash string
	CreatedAt string
}

// ReadCompilation returns one session by token.
func (s *Store) ReadCompilation(ctx context.Context, id string) (*Compilation, error) {
	var c Compilation
	err := s.db.QueryRowContext(ctx, `
		SELECT id, graph_name, graph_hash, created_at
		FROM compilations
		WHERE id = ?
	`, id).Scan(&c.ID, &c.GraphName, &c.GraphHash, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("compilation %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("query compilation: %w", err)
	}
	return &c, nil
}

// ReadLoweringEvents returns a session's lowering events in recorded order.
// Returns an empty slice (not nil) if no events exist.
func (s *Store) ReadLoweringEvents(ctx context.Context, compilationID string) ([]LoweringEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT node_index, node_kind, lower_name, outcome, detail
		FROM lowering_events
		WHERE compilation_id = ?
		ORDER BY seq ASC
	`, compilationID)
	if err != nil {
		return nil, fmt.Errorf("query lowering events: %w", err)
	}
	defer rows.Close()

	events := []LoweringEvent{}
	for rows.Next() {
		var ev LoweringEvent
		if err := rows.Scan(&ev.NodeIndex, &ev.NodeKind, &ev.LowerName, &ev.Outcome, &ev.Detail); err != nil {
			return nil, fmt.Errorf("scan lowering event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lowering events: %w", err)
	}
	return events, nil
}

// ReadPassRuns returns a session's pass verdicts in run order.
// Returns an empty slice (not nil) if no runs exist.
func (s *Store) ReadPassRuns(ctx context.Context, compilationID string) ([]PassRun, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, pass_id, result, error
		FROM pass_runs
		WHERE compilation_id = ?
		ORDER BY seq ASC
	`, compilationID)
	if err != nil {
		return nil, fmt.Errorf("query pass runs: %w", err)
	}
	defer rows.Close()

	runs := []PassRun{}
	for rows.Next() {
		var run PassRun
		if err := rows.Scan(&run.Seq, &run.PassID, &run.Result, &run.Error); err != nil {
			return nil, fmt.Errorf("scan pass run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pass runs: %w", err)
	}
	return runs, nil
}
