package agreements

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/accord/internal/workflow"
	"github.com/JaimeStill/accord/pkg/pagination"
)

// System defines the public contract for agreement domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Agreement], error)

	Find(ctx context.Context, id uuid.UUID) (*Agreement, error)

	// Generate registers the intake, runs the drafting and approval
	// workflow to completion, and persists the outcome. The returned state
	// is the workflow's final document.
	Generate(ctx context.Context, cmd GenerateCommand) (*workflow.State, error)

	// AttachSigned stores a countersigned document in blob storage and
	// links it to the agreement.
	AttachSigned(ctx context.Context, id uuid.UUID, cmd SignedCommand) (*Agreement, error)

	Delete(ctx context.Context, id uuid.UUID) error
}
