package approvals

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/accord/pkg/repository"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates an approval repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "approvals"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) ListByAgreement(ctx context.Context, agreementID uuid.UUID) ([]Approval, error) {
	q := `
		SELECT id, agreement_id, recipient, status, decided_at, updated_at
		FROM approvals
		WHERE agreement_id = $1
		ORDER BY recipient`

	items, err := repository.QueryMany(ctx, r.db, q, []any{agreementID}, scanApproval)
	if err != nil {
		return nil, fmt.Errorf("query approvals: %w", err)
	}
	return items, nil
}

// Statuses returns the current status for each recipient in one round trip.
// Recipients without a stored record report StatusPending: a stakeholder who
// was never engaged must not block the polling loop.
func (r *repo) Statuses(ctx context.Context, agreementID uuid.UUID, recipients []string) (map[string]Status, error) {
	statuses := make(map[string]Status, len(recipients))
	for _, recipient := range recipients {
		statuses[recipient] = StatusPending
	}

	if len(recipients) == 0 {
		return statuses, nil
	}

	items, err := r.ListByAgreement(ctx, agreementID)
	if err != nil {
		return nil, err
	}

	for _, a := range items {
		if _, wanted := statuses[a.Recipient]; wanted {
			statuses[a.Recipient] = a.Status
		}
	}
	return statuses, nil
}

func (r *repo) Decide(ctx context.Context, agreementID uuid.UUID, cmd DecideCommand) (*Approval, error) {
	q := `
		INSERT INTO approvals(id, agreement_id, recipient, status, decided_at)
		VALUES ($1, $2, $3, $4, CASE WHEN $4 = 'approved' THEN NOW() END)
		ON CONFLICT (agreement_id, recipient) DO UPDATE SET
			status = EXCLUDED.status,
			decided_at = CASE WHEN EXCLUDED.status = 'approved' THEN NOW() END,
			updated_at = NOW()
		RETURNING id, agreement_id, recipient, status, decided_at, updated_at`

	args := []any{uuid.New(), agreementID, cmd.Recipient, string(cmd.Status)}

	a, err := repository.QueryOne(ctx, r.db, q, args, scanApproval)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("approval recorded",
		"agreement_id", agreementID,
		"recipient", a.Recipient,
		"status", a.Status,
	)
	return &a, nil
}

func scanApproval(s repository.Scanner) (Approval, error) {
	var a Approval
	var raw string
	err := s.Scan(
		&a.ID,
		&a.AgreementID,
		&a.Recipient,
		&raw,
		&a.DecidedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return a, err
	}

	a.Status, err = ParseStatus(raw)
	return a, err
}
