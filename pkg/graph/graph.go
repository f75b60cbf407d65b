// Package graph provides a sequential workflow graph executor with
// unconditional and outcome-routed conditional edges. Stages are registered
// on a Builder, validated at Compile, and executed one at a time by Run
// until the End sentinel is reached. Cycles through conditional edges are
// permitted to support retry loops.
package graph

import (
	"context"
	"errors"
	"fmt"
)

// End is the sentinel stage name that terminates execution.
// It cannot be registered and has no outgoing edges.
const End = "END"

// Handler executes a single stage. It receives the current workflow state
// and returns the updated state. Handlers own their keys: they extend or
// overwrite the state they are given, never discard it.
type Handler[S any] func(ctx context.Context, s S) (S, error)

// Decision maps the current state to an outcome label for conditional
// routing. It must be pure: side-effect-free and deterministic for a given
// state. The executor calls it exactly once per visit to the deciding stage.
type Decision[S any] func(s S) string

// Transition describes a single edge traversal during execution.
// Visit is the 1-based visit count of the source stage within this run,
// which exceeds 1 only when the graph cycles.
type Transition struct {
	From  string
	To    string
	Visit int
}

type edge[S any] struct {
	to       string
	decide   Decision[S]
	outcomes map[string]string
}

// Graph is a compiled, executable workflow. It is immutable after Compile
// and safe for concurrent Run calls; each run carries its own state.
type Graph[S any] struct {
	stages map[string]Handler[S]
	edges  map[string]edge[S]
	entry  string
	config config
}

// Run executes the graph from the entry stage, threading the state through
// each handler and following edges until End. The merged state from stage N
// is visible to stage N+1 before its edge is followed. A handler error
// aborts the run; the executor does not retry on a stage's behalf.
//
// Cancellation of ctx terminates the run with ErrCancelled, never a partial
// success. The state returned alongside a non-nil error reflects progress at
// the point of failure and must not be treated as a completed result.
func (g *Graph[S]) Run(ctx context.Context, s S) (S, error) {
	visits := make(map[string]int, len(g.stages))
	current := g.entry

	for current != End {
		if err := ctx.Err(); err != nil {
			return s, fmt.Errorf("stage %s: %w", current, ErrCancelled)
		}

		visits[current]++
		if g.config.maxVisits > 0 && visits[current] > g.config.maxVisits {
			return s, &VisitLimitError{Stage: current, Visits: visits[current]}
		}

		next, err := g.stages[current](ctx, s)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return s, fmt.Errorf("stage %s: %w", current, ErrCancelled)
			}
			return s, fmt.Errorf("stage %s: %w", current, err)
		}
		s = next

		target, err := g.route(current, s)
		if err != nil {
			return s, err
		}

		if g.config.observer != nil {
			g.config.observer(Transition{From: current, To: target, Visit: visits[current]})
		}

		current = target
	}

	return s, nil
}

func (g *Graph[S]) route(current string, s S) (string, error) {
	e := g.edges[current]
	if e.decide == nil {
		return e.to, nil
	}

	label := e.decide(s)
	target, ok := e.outcomes[label]
	if !ok {
		return "", &UnroutableOutcomeError{Stage: current, Outcome: label}
	}
	return target, nil
}
