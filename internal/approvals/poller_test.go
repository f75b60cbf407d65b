package approvals_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/accord/internal/approvals"
	"github.com/JaimeStill/accord/pkg/clock"
)

// scriptedSource returns one status map per polling round, repeating the
// final round once the script is exhausted.
type scriptedSource struct {
	rounds []map[string]approvals.Status
	err    error
	calls  int
}

func (s *scriptedSource) Statuses(ctx context.Context, agreementID uuid.UUID, recipients []string) (map[string]approvals.Status, error) {
	if s.err != nil {
		return nil, s.err
	}

	idx := s.calls
	if idx >= len(s.rounds) {
		idx = len(s.rounds) - 1
	}
	s.calls++
	return s.rounds[idx], nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAwaitAggregation(t *testing.T) {
	tests := []struct {
		name     string
		statuses map[string]approvals.Status
		want     approvals.Status
	}{
		{
			"all approved",
			map[string]approvals.Status{
				"a@acme.io": approvals.StatusApproved,
				"b@acme.io": approvals.StatusApproved,
			},
			approvals.StatusApproved,
		},
		{
			"one pending",
			map[string]approvals.Status{
				"a@acme.io": approvals.StatusApproved,
				"b@acme.io": approvals.StatusPending,
			},
			approvals.StatusPending,
		},
		{
			"all pending",
			map[string]approvals.Status{
				"a@acme.io": approvals.StatusPending,
				"b@acme.io": approvals.StatusPending,
			},
			approvals.StatusPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &scriptedSource{rounds: []map[string]approvals.Status{tt.statuses}}
			clk := &clock.Immediate{}
			poller := approvals.NewPoller(source, clk, 5*time.Second, discard())

			recipients := make([]string, 0, len(tt.statuses))
			for r := range tt.statuses {
				recipients = append(recipients, r)
			}

			_, outcome, err := poller.Await(context.Background(), uuid.New(), recipients)
			if err != nil {
				t.Fatalf("Await() error = %v", err)
			}
			if outcome != tt.want {
				t.Errorf("outcome = %q, want %q", outcome, tt.want)
			}
			if clk.Waits != 0 {
				t.Errorf("slept %d rounds, want 0 (no idle present)", clk.Waits)
			}
		})
	}
}

func TestAwaitEmptyRecipients(t *testing.T) {
	source := &scriptedSource{}
	poller := approvals.NewPoller(source, &clock.Immediate{}, 5*time.Second, discard())

	statuses, outcome, err := poller.Await(context.Background(), uuid.New(), nil)
	if err != nil {
		t.Fatalf("Await() error = %v", err)
	}
	if outcome != approvals.StatusApproved {
		t.Errorf("outcome = %q, want approved (vacuous)", outcome)
	}
	if len(statuses) != 0 {
		t.Errorf("statuses = %v, want empty", statuses)
	}
	if source.calls != 0 {
		t.Errorf("source queried %d times, want 0", source.calls)
	}
}

func TestAwaitBlocksWhileIdle(t *testing.T) {
	source := &scriptedSource{
		rounds: []map[string]approvals.Status{
			{"a@acme.io": approvals.StatusIdle, "b@acme.io": approvals.StatusApproved},
			{"a@acme.io": approvals.StatusIdle, "b@acme.io": approvals.StatusApproved},
			{"a@acme.io": approvals.StatusApproved, "b@acme.io": approvals.StatusApproved},
		},
	}
	clk := &clock.Immediate{}
	poller := approvals.NewPoller(source, clk, 5*time.Second, discard())

	_, outcome, err := poller.Await(context.Background(), uuid.New(), []string{"a@acme.io", "b@acme.io"})
	if err != nil {
		t.Fatalf("Await() error = %v", err)
	}
	if outcome != approvals.StatusApproved {
		t.Errorf("outcome = %q, want approved", outcome)
	}
	if source.calls != 3 {
		t.Errorf("polled %d rounds, want 3", source.calls)
	}
	if clk.Waits != 2 {
		t.Errorf("slept %d times, want 2", clk.Waits)
	}
}

func TestAwaitSourceErrorPropagates(t *testing.T) {
	boom := errors.New("status store unreachable")
	source := &scriptedSource{err: boom}
	poller := approvals.NewPoller(source, &clock.Immediate{}, 5*time.Second, discard())

	_, _, err := poller.Await(context.Background(), uuid.New(), []string{"a@acme.io"})
	if !errors.Is(err, boom) {
		t.Errorf("Await() error = %v, want wrapped %v", err, boom)
	}
}

func TestAwaitCancelledDuringWait(t *testing.T) {
	source := &scriptedSource{
		rounds: []map[string]approvals.Status{
			{"a@acme.io": approvals.StatusIdle},
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	poller := approvals.NewPoller(source, clock.System(), time.Minute, discard())

	done := make(chan error, 1)
	go func() {
		_, _, err := poller.Await(ctx, uuid.New(), []string{"a@acme.io"})
		done <- err
	}()

	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Await() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Await() did not return after cancellation")
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    approvals.Status
		wantErr bool
	}{
		{"approved", approvals.StatusApproved, false},
		{"APPROVED", approvals.StatusApproved, false},
		{" Idle ", approvals.StatusIdle, false},
		{"Pending", approvals.StatusPending, false},
		{"rejected", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := approvals.ParseStatus(tt.input)
			if tt.wantErr {
				if !errors.Is(err, approvals.ErrInvalidStatus) {
					t.Errorf("ParseStatus(%q) error = %v, want ErrInvalidStatus", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStatus(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseStatus(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
