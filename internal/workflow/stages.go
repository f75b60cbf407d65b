package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/JaimeStill/accord/internal/approvals"
	"github.com/JaimeStill/accord/internal/clauses"
	"github.com/JaimeStill/accord/internal/drafting"
	"github.com/JaimeStill/accord/internal/notify"
	"github.com/JaimeStill/accord/internal/revisions"
	"github.com/JaimeStill/accord/pkg/graph"
)

// DraftStage generates the agreement text from the intake fields.
func DraftStage(rt *Runtime) graph.Handler[State] {
	return func(ctx context.Context, s State) (State, error) {
		text, err := rt.Drafter.Draft(ctx, drafting.Intake{
			CompanyName:     s.CompanyName,
			PartnershipType: s.PartnershipType,
			Objective:       s.Objective,
			Scope:           s.Scope,
			EffectiveDate:   s.MouDate,
		})
		if err != nil {
			return s, err
		}

		s.DraftText = text
		return s, nil
	}
}

// ClausesStage retrieves the stored clauses most relevant to the agreement,
// querying by the intake's partnership framing rather than the generated
// draft so retrieval is stable across regenerations.
func ClausesStage(rt *Runtime) graph.Handler[State] {
	return func(ctx context.Context, s State) (State, error) {
		query := strings.TrimSpace(fmt.Sprintf(
			"%s %s %s",
			s.PartnershipType, s.Objective, s.Scope,
		))

		items, err := rt.Clauses.Search(ctx, clauses.SearchCommand{
			Query: query,
			TopK:  rt.Options.TopK,
		})
		if err != nil {
			return s, fmt.Errorf("retrieve clauses: %w", err)
		}

		retrieved := make([]RetrievedClause, len(items))
		for i, c := range items {
			retrieved[i] = RetrievedClause{
				ClauseID:        c.ID,
				ClauseType:      c.ClauseType,
				PartnershipType: c.PartnershipType,
				Text:            c.Text,
			}
		}

		s.RetrievedClauses = retrieved
		return s, nil
	}
}

// NotifyStage sends the draft to every active recipient and records the
// per-recipient delivery outcomes. Repeat rounds wait ResendDelay first so
// pending reviewers are not immediately re-notified.
func NotifyStage(rt *Runtime) graph.Handler[State] {
	return func(ctx context.Context, s State) (State, error) {
		if s.ReviewCycles > 0 && rt.Options.ResendDelay > 0 {
			select {
			case <-ctx.Done():
				return s, ctx.Err()
			case <-rt.Clock.After(rt.Options.ResendDelay):
			}
		}

		audience, err := rt.Recipients.ListActive(ctx)
		if err != nil {
			return s, fmt.Errorf("list review audience: %w", err)
		}

		deliveries, err := rt.Notifier.Broadcast(ctx, notify.Emails(audience), reviewMessage(s))
		if err != nil {
			return s, fmt.Errorf("notify reviewers: %w", err)
		}

		s.EmailsSent = deliveries
		return s, nil
	}
}

// AwaitStage blocks until no notified recipient remains idle and records
// the per-recipient statuses plus the aggregate outcome. A pending outcome
// counts a completed review cycle.
func AwaitStage(rt *Runtime) graph.Handler[State] {
	return func(ctx context.Context, s State) (State, error) {
		audience := make([]string, len(s.EmailsSent))
		for i, d := range s.EmailsSent {
			audience[i] = d.Recipient
		}

		statuses, outcome, err := rt.Poller.Await(ctx, s.AgreementID, audience)
		if err != nil {
			return s, fmt.Errorf("await approvals: %w", err)
		}

		s.ApprovalStatus = statuses
		s.OverallStatus = outcome

		if outcome == approvals.StatusPending {
			s.ReviewCycles++
		}
		return s, nil
	}
}

// SaveVersionStage records the approved draft as the next revision of the
// agreement subject and captures the version tag and diff.
func SaveVersionStage(rt *Runtime) graph.Handler[State] {
	return func(ctx context.Context, s State) (State, error) {
		result, err := rt.Revisions.Save(ctx, revisions.SaveCommand{
			Subject:         s.CompanyName,
			PartnershipType: s.PartnershipType,
			Body:            s.DraftText,
		})
		if err != nil {
			return s, fmt.Errorf("save version: %w", err)
		}

		s.VersionNumber = result.Version
		s.VersionDiff = result.Diff
		return s, nil
	}
}

func reviewMessage(s State) notify.Message {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("A memorandum of understanding draft with %s is ready for review.\n\n", s.CompanyName))
	sb.WriteString(fmt.Sprintf("Partnership type: %s\n", s.PartnershipType))
	sb.WriteString(fmt.Sprintf("Effective date: %s\n\n", s.MouDate))
	sb.WriteString(s.DraftText)

	if len(s.RetrievedClauses) > 0 {
		sb.WriteString("\n\nReference clauses:\n")
		for _, c := range s.RetrievedClauses {
			sb.WriteString("- ")
			sb.WriteString(c.Text)
			sb.WriteString("\n")
		}
	}

	return notify.Message{
		Subject: fmt.Sprintf("Review requested: %s agreement with %s", s.PartnershipType, s.CompanyName),
		Body:    sb.String(),
	}
}
