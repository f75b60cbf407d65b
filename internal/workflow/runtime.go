package workflow

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/accord/internal/approvals"
	"github.com/JaimeStill/accord/internal/clauses"
	"github.com/JaimeStill/accord/internal/drafting"
	"github.com/JaimeStill/accord/internal/notify"
	"github.com/JaimeStill/accord/internal/recipients"
	"github.com/JaimeStill/accord/internal/revisions"
	"github.com/JaimeStill/accord/pkg/clock"
)

// Runtime bundles the dependencies that workflow stages require.
// It is constructed by higher-level composition code from Infrastructure
// and Domain systems.
type Runtime struct {
	Drafter    drafting.Drafter
	Clauses    clauses.System
	Recipients recipients.System
	Notifier   *notify.Notifier
	Poller     Poller
	Revisions  *revisions.Controller
	Clock      clock.Clock
	Logger     *slog.Logger
	Options    Options
}

// Poller blocks until every notified recipient has resolved out of the
// idle state and reports the aggregate outcome.
type Poller interface {
	Await(ctx context.Context, agreementID uuid.UUID, recipients []string) (map[string]approvals.Status, approvals.Status, error)
}

// Options tunes workflow execution.
type Options struct {
	// TopK is the number of clauses retrieved per run.
	TopK int

	// ResendDelay is how long a repeat notification round waits before
	// re-sending, giving pending reviewers time to act between cycles.
	ResendDelay time.Duration

	// MaxReviewCycles bounds how many times the review cycle may repeat.
	// Zero leaves the cycle unbounded.
	MaxReviewCycles int
}
