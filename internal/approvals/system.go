package approvals

import (
	"context"

	"github.com/google/uuid"
)

// System defines the public contract for approval domain operations.
type System interface {
	Handler() *Handler

	ListByAgreement(ctx context.Context, agreementID uuid.UUID) ([]Approval, error)
	Statuses(ctx context.Context, agreementID uuid.UUID, recipients []string) (map[string]Status, error)
	Decide(ctx context.Context, agreementID uuid.UUID, cmd DecideCommand) (*Approval, error)
}
