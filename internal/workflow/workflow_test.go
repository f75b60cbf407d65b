package workflow_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/accord/internal/approvals"
	"github.com/JaimeStill/accord/internal/clauses"
	"github.com/JaimeStill/accord/internal/drafting"
	"github.com/JaimeStill/accord/internal/notify"
	"github.com/JaimeStill/accord/internal/recipients"
	"github.com/JaimeStill/accord/internal/revisions"
	"github.com/JaimeStill/accord/internal/workflow"
	"github.com/JaimeStill/accord/pkg/clock"
	"github.com/JaimeStill/accord/pkg/graph"
	"github.com/JaimeStill/accord/pkg/pagination"
)

type fakeDrafter struct {
	text string
	err  error
}

func (f *fakeDrafter) Draft(ctx context.Context, intake drafting.Intake) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type fakeClauses struct {
	results []clauses.Clause
	lastCmd clauses.SearchCommand
}

func (f *fakeClauses) Handler() *clauses.Handler { return nil }

func (f *fakeClauses) List(ctx context.Context, page pagination.PageRequest, filters clauses.Filters) (*pagination.PageResult[clauses.Clause], error) {
	return nil, errors.New("not implemented")
}

func (f *fakeClauses) Find(ctx context.Context, id uuid.UUID) (*clauses.Clause, error) {
	return nil, clauses.ErrNotFound
}

func (f *fakeClauses) Create(ctx context.Context, cmd clauses.CreateCommand) (*clauses.Clause, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeClauses) Delete(ctx context.Context, id uuid.UUID) error {
	return clauses.ErrNotFound
}

func (f *fakeClauses) Search(ctx context.Context, cmd clauses.SearchCommand) ([]clauses.Clause, error) {
	f.lastCmd = cmd
	return f.results, nil
}

type fakeRecipients struct {
	active []recipients.Recipient
}

func (f *fakeRecipients) Handler() *recipients.Handler { return nil }

func (f *fakeRecipients) List(ctx context.Context, page pagination.PageRequest, filters recipients.Filters) (*pagination.PageResult[recipients.Recipient], error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRecipients) ListActive(ctx context.Context) ([]recipients.Recipient, error) {
	return f.active, nil
}

func (f *fakeRecipients) Find(ctx context.Context, id uuid.UUID) (*recipients.Recipient, error) {
	return nil, recipients.ErrNotFound
}

func (f *fakeRecipients) Create(ctx context.Context, cmd recipients.CreateCommand) (*recipients.Recipient, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRecipients) Update(ctx context.Context, id uuid.UUID, cmd recipients.UpdateCommand) (*recipients.Recipient, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRecipients) Delete(ctx context.Context, id uuid.UUID) error {
	return recipients.ErrNotFound
}

type countingMailer struct {
	sent []string
}

func (m *countingMailer) Send(ctx context.Context, to string, msg notify.Message) error {
	m.sent = append(m.sent, to)
	return nil
}

// scriptedPoller returns one scripted outcome per Await call, repeating the
// last entry once the script is exhausted.
type scriptedPoller struct {
	outcomes []approvals.Status
	calls    int
}

func (p *scriptedPoller) Await(ctx context.Context, agreementID uuid.UUID, recs []string) (map[string]approvals.Status, approvals.Status, error) {
	idx := p.calls
	if idx >= len(p.outcomes) {
		idx = len(p.outcomes) - 1
	}
	p.calls++

	outcome := p.outcomes[idx]
	statuses := make(map[string]approvals.Status, len(recs))
	for _, r := range recs {
		statuses[r] = outcome
	}
	return statuses, outcome, nil
}

type memStore struct {
	revs []revisions.Revision
}

func (m *memStore) ListBySubject(ctx context.Context, subject string) ([]revisions.Revision, error) {
	var out []revisions.Revision
	for _, r := range m.revs {
		if r.Subject == subject {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) Append(ctx context.Context, rev revisions.Revision) (*revisions.Revision, error) {
	m.revs = append(m.revs, rev)
	return &rev, nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRecipient(name, email string) recipients.Recipient {
	return recipients.Recipient{ID: uuid.New(), Name: name, Email: email, Active: true}
}

type fixture struct {
	rt     *workflow.Runtime
	mailer *countingMailer
	store  *memStore
	clk    *clock.Immediate
}

func newFixture(poller workflow.Poller) *fixture {
	mailer := &countingMailer{}
	store := &memStore{}
	clk := &clock.Immediate{}
	logger := discard()

	rt := &workflow.Runtime{
		Drafter: &fakeDrafter{text: "Purpose\nThis agreement establishes a partnership."},
		Clauses: &fakeClauses{results: []clauses.Clause{
			{
				ID:              uuid.New(),
				Code:            "CONF-1",
				ClauseType:      "Confidentiality",
				PartnershipType: "Internship",
				Text:            "Confidentiality obligations survive termination.",
			},
			{
				ID:              uuid.New(),
				Code:            "TERM-1",
				ClauseType:      "Termination",
				PartnershipType: "Internship",
				Text:            "Either party may terminate with 30 days notice.",
			},
		}},
		Recipients: &fakeRecipients{active: []recipients.Recipient{
			testRecipient("Alex", "alex@example.com"),
			testRecipient("Sam", "sam@example.com"),
		}},
		Notifier:  notify.NewNotifier(mailer, logger),
		Poller:    poller,
		Revisions: revisions.NewController(store, logger),
		Clock:     clk,
		Logger:    logger,
		Options: workflow.Options{
			TopK:        2,
			ResendDelay: 1,
		},
	}

	return &fixture{rt: rt, mailer: mailer, store: store, clk: clk}
}

func intake() drafting.Intake {
	return drafting.Intake{
		CompanyName:     "Acme Robotics",
		PartnershipType: "Internship",
		Objective:       "Host engineering interns",
		Scope:           "Summer cohort",
		EffectiveDate:   "2026-06-01",
	}
}

func TestExecuteApprovedFirstPass(t *testing.T) {
	f := newFixture(&scriptedPoller{outcomes: []approvals.Status{approvals.StatusApproved}})

	final, err := workflow.Execute(context.Background(), f.rt, uuid.New(), intake())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if final.DraftText == "" {
		t.Error("DraftText is empty")
	}
	if len(final.RetrievedClauses) != 2 {
		t.Errorf("RetrievedClauses = %d, want 2", len(final.RetrievedClauses))
	}
	if len(final.EmailsSent) != 2 {
		t.Errorf("EmailsSent = %d, want 2", len(final.EmailsSent))
	}
	if final.OverallStatus != approvals.StatusApproved {
		t.Errorf("OverallStatus = %q, want approved", final.OverallStatus)
	}
	if final.ReviewCycles != 0 {
		t.Errorf("ReviewCycles = %d, want 0", final.ReviewCycles)
	}
	if final.VersionNumber != "v1" {
		t.Errorf("VersionNumber = %q, want v1", final.VersionNumber)
	}
	if final.VersionDiff != revisions.DiffInitial {
		t.Errorf("VersionDiff = %q, want %q", final.VersionDiff, revisions.DiffInitial)
	}
	if f.clk.Waits != 0 {
		t.Errorf("clock waits = %d, want 0 on a first-pass approval", f.clk.Waits)
	}
}

func TestExecuteReviewCycle(t *testing.T) {
	f := newFixture(&scriptedPoller{outcomes: []approvals.Status{
		approvals.StatusPending,
		approvals.StatusApproved,
	}})

	final, err := workflow.Execute(context.Background(), f.rt, uuid.New(), intake())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if final.ReviewCycles != 1 {
		t.Errorf("ReviewCycles = %d, want 1", final.ReviewCycles)
	}
	if final.OverallStatus != approvals.StatusApproved {
		t.Errorf("OverallStatus = %q, want approved", final.OverallStatus)
	}

	// Two notify rounds to two recipients each.
	if len(f.mailer.sent) != 4 {
		t.Errorf("mailer sent %d messages, want 4", len(f.mailer.sent))
	}

	// The repeat round waits before re-sending.
	if f.clk.Waits != 1 {
		t.Errorf("clock waits = %d, want 1", f.clk.Waits)
	}

	if len(f.store.revs) != 1 {
		t.Errorf("stored %d revisions, want 1", len(f.store.revs))
	}
}

func TestExecuteReviewCycleCeiling(t *testing.T) {
	f := newFixture(&scriptedPoller{outcomes: []approvals.Status{approvals.StatusPending}})
	f.rt.Options.MaxReviewCycles = 2

	_, err := workflow.Execute(context.Background(), f.rt, uuid.New(), intake())

	var limitErr *graph.VisitLimitError
	if !errors.As(err, &limitErr) {
		t.Fatalf("Execute() error = %v, want VisitLimitError", err)
	}
	if len(f.store.revs) != 0 {
		t.Errorf("stored %d revisions, want 0 when never approved", len(f.store.revs))
	}
}

func TestExecuteDraftFailureAborts(t *testing.T) {
	f := newFixture(&scriptedPoller{outcomes: []approvals.Status{approvals.StatusApproved}})
	f.rt.Drafter = &fakeDrafter{err: drafting.ErrGenerateFailed}

	_, err := workflow.Execute(context.Background(), f.rt, uuid.New(), intake())
	if !errors.Is(err, drafting.ErrGenerateFailed) {
		t.Fatalf("Execute() error = %v, want ErrGenerateFailed", err)
	}

	if len(f.mailer.sent) != 0 {
		t.Errorf("mailer sent %d messages, want 0 after draft failure", len(f.mailer.sent))
	}
	if len(f.store.revs) != 0 {
		t.Errorf("stored %d revisions, want 0 after draft failure", len(f.store.revs))
	}
}

func TestExecuteCancellation(t *testing.T) {
	f := newFixture(&scriptedPoller{outcomes: []approvals.Status{approvals.StatusApproved}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := workflow.Execute(ctx, f.rt, uuid.New(), intake())
	if !errors.Is(err, graph.ErrCancelled) {
		t.Fatalf("Execute() error = %v, want ErrCancelled", err)
	}
}

func TestExecuteRetainsClauseStructure(t *testing.T) {
	f := newFixture(&scriptedPoller{outcomes: []approvals.Status{approvals.StatusApproved}})
	fc := f.rt.Clauses.(*fakeClauses)

	final, err := workflow.Execute(context.Background(), f.rt, uuid.New(), intake())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if len(final.RetrievedClauses) != len(fc.results) {
		t.Fatalf("RetrievedClauses = %d, want %d", len(final.RetrievedClauses), len(fc.results))
	}

	// Retrieval rank order and the full clause record both survive onto the
	// state: identity and taxonomy, not just the text.
	for i, want := range fc.results {
		got := final.RetrievedClauses[i]
		if got.ClauseID != want.ID {
			t.Errorf("RetrievedClauses[%d].ClauseID = %s, want %s", i, got.ClauseID, want.ID)
		}
		if got.ClauseType != want.ClauseType {
			t.Errorf("RetrievedClauses[%d].ClauseType = %q, want %q", i, got.ClauseType, want.ClauseType)
		}
		if got.PartnershipType != want.PartnershipType {
			t.Errorf("RetrievedClauses[%d].PartnershipType = %q, want %q", i, got.PartnershipType, want.PartnershipType)
		}
		if got.Text != want.Text {
			t.Errorf("RetrievedClauses[%d].Text = %q, want %q", i, got.Text, want.Text)
		}
	}
}

func TestExecuteRetrievalQueryComposition(t *testing.T) {
	f := newFixture(&scriptedPoller{outcomes: []approvals.Status{approvals.StatusApproved}})
	fc := f.rt.Clauses.(*fakeClauses)

	if _, err := workflow.Execute(context.Background(), f.rt, uuid.New(), intake()); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	for _, want := range []string{"Internship", "Host engineering interns", "Summer cohort"} {
		if !strings.Contains(fc.lastCmd.Query, want) {
			t.Errorf("retrieval query missing %q: %q", want, fc.lastCmd.Query)
		}
	}
	if fc.lastCmd.TopK != 2 {
		t.Errorf("TopK = %d, want 2", fc.lastCmd.TopK)
	}
}
