package workflow

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/JaimeStill/accord/internal/drafting"
	"github.com/JaimeStill/accord/pkg/graph"
)

// Execute runs the agreement workflow for a single intake. It compiles the
// stage graph (draft → retrieve_clauses → notify → await_approval, cycling
// back to notify until approved, then save_version), seeds the state from
// the intake, and returns the fully populated final state.
func Execute(ctx context.Context, rt *Runtime, agreementID uuid.UUID, intake drafting.Intake) (*State, error) {
	g, err := buildGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initial := State{
		AgreementID:     agreementID,
		CompanyName:     intake.CompanyName,
		PartnershipType: intake.PartnershipType,
		Objective:       intake.Objective,
		Scope:           intake.Scope,
		MouDate:         intake.EffectiveDate,
	}

	final, err := g.Run(ctx, initial)
	if err != nil {
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	return &final, nil
}

func buildGraph(rt *Runtime) (*graph.Graph[State], error) {
	opts := []graph.Option{
		graph.WithObserver(func(t graph.Transition) {
			rt.Logger.Debug("stage completed",
				"from", t.From,
				"to", t.To,
				"visit", t.Visit,
			)
		}),
	}

	if rt.Options.MaxReviewCycles > 0 {
		// Notify and await each run once per cycle, plus the initial pass.
		opts = append(opts, graph.WithMaxVisits(rt.Options.MaxReviewCycles+1))
	}

	return graph.New[State](opts...).
		Register(StageDraft, DraftStage(rt)).
		Register(StageClauses, ClausesStage(rt)).
		Register(StageNotify, NotifyStage(rt)).
		Register(StageAwait, AwaitStage(rt)).
		Register(StageSaveVersion, SaveVersionStage(rt)).
		Connect(StageDraft, StageClauses).
		Connect(StageClauses, StageNotify).
		Connect(StageNotify, StageAwait).
		ConnectConditional(StageAwait, RouteApproval, map[string]string{
			OutcomeApproved: StageSaveVersion,
			OutcomePending:  StageNotify,
		}).
		Connect(StageSaveVersion, graph.End).
		SetEntry(StageDraft).
		Compile()
}
