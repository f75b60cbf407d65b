package clauses

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/accord/pkg/pagination"
)

// System defines the public contract for clause domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Clause], error)

	Find(ctx context.Context, id uuid.UUID) (*Clause, error)
	Create(ctx context.Context, cmd CreateCommand) (*Clause, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Search returns the clauses nearest to the query text in embedding
	// space, ordered most similar first.
	Search(ctx context.Context, cmd SearchCommand) ([]Clause, error)
}
