package recipients

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/accord/pkg/pagination"
)

// System defines the public contract for recipient domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Recipient], error)

	// ListActive returns every active recipient, ordered by email. This is
	// the review audience for agreement notifications and approvals.
	ListActive(ctx context.Context) ([]Recipient, error)

	Find(ctx context.Context, id uuid.UUID) (*Recipient, error)
	Create(ctx context.Context, cmd CreateCommand) (*Recipient, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Recipient, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
