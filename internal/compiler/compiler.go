package compiler

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ccu1tn/onnc/internal/ir"
	"github.com/ccu1tn/onnc/internal/lower"
	"github.com/ccu1tn/onnc/internal/pass"
	"github.com/ccu1tn/onnc/internal/source"
	"github.com/ccu1tn/onnc/internal/stats"
	"github.com/ccu1tn/onnc/internal/store"
)

// Options configures one compilation session. The zero value compiles with
// the standard lowering catalog, no passes, no counters, and no audit store.
type Options struct {
	// Registry supplies the lowering strategies. Nil means the standard
	// catalog.
	Registry *lower.Registry

	// Passes run over the compute graph after lowering, in order.
	Passes []pass.Pass

	// Counters, when non-nil, receives per-session counters (nodes_total,
	// nodes_lowered, nodes_failed).
	Counters *stats.Group

	// Store, when non-nil, receives the audit trail for the session.
	Store *store.Store

	// SessionID overrides the generated UUIDv7 session token. Tests use
	// this for reproducible audit rows.
	SessionID string
}

// Result is the outcome of a compilation session. On error the Graph holds
// whatever was built before the failure and stays consumable for
// diagnostics; GraphHash is only set on success.
type Result struct {
	CompilationID string
	Graph         *ir.Graph
	GraphHash     string
	PassRuns      []pass.RunRecord
}

// Compile runs a full session over src: declare values, lower nodes in
// order, run passes, hash the final graph. The first lowering failure or
// pass failure aborts the session; the partial Result is returned alongside
// the error.
func Compile(ctx context.Context, src *source.Graph, opts Options) (*Result, error) {
	sessionID := opts.SessionID
	if sessionID == "" {
		sessionID = uuid.Must(uuid.NewV7()).String()
	}
	registry := opts.Registry
	if registry == nil {
		registry = lower.NewStandardRegistry()
	}

	res := &Result{CompilationID: sessionID}

	if opts.Store != nil {
		if err := opts.Store.BeginCompilation(ctx, sessionID, src.Name); err != nil {
			return res, fmt.Errorf("begin session: %w", err)
		}
	}

	g := ir.NewGraph(src.Name)
	res.Graph = g
	for _, t := range src.Values {
		if _, err := g.AddValue(t); err != nil {
			return res, fmt.Errorf("declare value %q: %w", t.Name, err)
		}
	}

	for i, node := range src.Nodes {
		_, lowerName, err := registry.LowerNode(g, node)

		if opts.Counters != nil {
			opts.Counters.AddCounter("nodes_total", 1)
			if err == nil {
				opts.Counters.AddCounter("nodes_lowered", 1)
			} else {
				opts.Counters.AddCounter("nodes_failed", 1)
			}
		}

		if opts.Store != nil {
			ev := store.LoweringEvent{
				NodeIndex: i,
				NodeKind:  node.Kind,
				LowerName: lowerName,
				Outcome:   loweringOutcome(err),
			}
			if err != nil {
				ev.Detail = err.Error()
			}
			if serr := opts.Store.RecordLoweringEvent(ctx, sessionID, i, ev); serr != nil {
				return res, fmt.Errorf("record lowering event: %w", serr)
			}
		}

		if err != nil {
			return res, fmt.Errorf("lower node %d (%s): %w", i, node.Kind, err)
		}
	}

	mgr := pass.NewManager()
	for _, p := range opts.Passes {
		if err := mgr.Add(p); err != nil {
			return res, err
		}
	}
	runs, passErr := mgr.Run(src, g)
	res.PassRuns = runs

	if opts.Store != nil {
		for i, rec := range runs {
			pr := store.PassRun{Seq: i, PassID: rec.PassID, Result: rec.Result.String()}
			if rec.Err != nil {
				pr.Error = rec.Err.Error()
			}
			if serr := opts.Store.RecordPassRun(ctx, sessionID, pr); serr != nil {
				return res, fmt.Errorf("record pass run: %w", serr)
			}
		}
	}
	if passErr != nil {
		return res, passErr
	}

	hash, err := ir.GraphHash(g)
	if err != nil {
		return res, fmt.Errorf("hash graph: %w", err)
	}
	res.GraphHash = hash

	if opts.Store != nil {
		if err := opts.Store.FinishCompilation(ctx, sessionID, hash); err != nil {
			return res, fmt.Errorf("finish session: %w", err)
		}
	}

	return res, nil
}

// loweringOutcome classifies a lowering error for the audit trail.
func loweringOutcome(err error) string {
	switch {
	case err == nil:
		return store.OutcomeLowered
	case lower.IsUnsupported(err):
		return store.OutcomeUnsupported
	case lower.IsAmbiguous(err):
		return store.OutcomeAmbiguous
	default:
		return store.OutcomeError
	}
}
