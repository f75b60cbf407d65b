package approvals

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/accord/pkg/clock"
)

// StatusSource reads the current status for a set of recipients. Each
// polling round re-reads full state: external actors may change a status at
// any time, so nothing is cached between rounds.
type StatusSource interface {
	Statuses(ctx context.Context, agreementID uuid.UUID, recipients []string) (map[string]Status, error)
}

// Poller blocks until no recipient remains idle, then classifies the
// aggregate outcome. Idle recipients are actively reviewing and hold the
// loop open; pending recipients never block — a stakeholder who has not
// engaged is indistinguishable from one who never will.
type Poller struct {
	source   StatusSource
	clock    clock.Clock
	interval time.Duration
	logger   *slog.Logger
}

// NewPoller creates a Poller reading from source, sleeping interval between
// rounds on the given clock.
func NewPoller(source StatusSource, clk clock.Clock, interval time.Duration, logger *slog.Logger) *Poller {
	return &Poller{
		source:   source,
		clock:    clk,
		interval: interval,
		logger:   logger.With("system", "approval-poller"),
	}
}

// Await polls recipient statuses until none is idle, returning the final
// per-recipient map and the aggregate outcome: StatusApproved only when
// every recipient approved, otherwise StatusPending. An empty recipient set
// is vacuously approved. Source errors propagate immediately rather than
// degrading into a permanent idle loop. Cancellation interrupts the
// inter-round wait and surfaces ctx.Err().
func (p *Poller) Await(ctx context.Context, agreementID uuid.UUID, recipients []string) (map[string]Status, Status, error) {
	if len(recipients) == 0 {
		return map[string]Status{}, StatusApproved, nil
	}

	for round := 1; ; round++ {
		statuses, err := p.source.Statuses(ctx, agreementID, recipients)
		if err != nil {
			return nil, "", fmt.Errorf("poll round %d: %w", round, err)
		}

		idle := countIdle(statuses)
		if idle == 0 {
			outcome := classify(statuses)
			p.logger.Info("approval polling resolved",
				"agreement_id", agreementID,
				"rounds", round,
				"outcome", outcome,
			)
			return statuses, outcome, nil
		}

		p.logger.Info("recipients still reviewing",
			"agreement_id", agreementID,
			"round", round,
			"idle", idle,
		)

		select {
		case <-ctx.Done():
			return nil, "", ctx.Err()
		case <-p.clock.After(p.interval):
		}
	}
}

func countIdle(statuses map[string]Status) int {
	idle := 0
	for _, s := range statuses {
		if s == StatusIdle {
			idle++
		}
	}
	return idle
}

func classify(statuses map[string]Status) Status {
	for _, s := range statuses {
		if s != StatusApproved {
			return StatusPending
		}
	}
	return StatusApproved
}
