package revisions

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

// NewStore creates a PostgreSQL-backed revision store. The revisions table
// carries a UNIQUE (subject, number) index; a concurrent writer that
// assigns the same version number violates it, which maps to ErrConflict.
func NewStore(db *sql.DB, logger *slog.Logger) Store {
	return &repo{
		db:     db,
		logger: logger.With("system", "revision-store"),
	}
}

func (r *repo) ListBySubject(ctx context.Context, subject string) ([]Revision, error) {
	q := `
		SELECT id, subject, partnership_type, body, number, diff, created_at
		FROM revisions
		WHERE subject = $1
		ORDER BY position`

	items, err := repository.QueryMany(ctx, r.db, q, []any{subject}, scanRevision)
	if err != nil {
		return nil, fmt.Errorf("query revisions for %s: %w", subject, err)
	}
	return items, nil
}

func (r *repo) Append(ctx context.Context, rev Revision) (*Revision, error) {
	q := `
		INSERT INTO revisions(id, subject, partnership_type, body, number, diff)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, subject, partnership_type, body, number, diff, created_at`

	args := []any{
		uuid.New(),
		rev.Subject,
		rev.PartnershipType,
		rev.Body,
		rev.Number,
		rev.Diff,
	}

	saved, err := repository.QueryOne(ctx, r.db, q, args, scanRevision)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrConflict)
	}
	return &saved, nil
}

func scanRevision(s repository.Scanner) (Revision, error) {
	var rev Revision
	err := s.Scan(
		&rev.ID,
		&rev.Subject,
		&rev.PartnershipType,
		&rev.Body,
		&rev.Number,
		&rev.Diff,
		&rev.CreatedAt,
	)
	rev.Version = VersionTag(rev.Number)
	return rev, err
}
