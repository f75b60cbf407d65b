package clauses

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/accord/pkg/pagination"
	"github.com/JaimeStill/accord/pkg/query"
	"github.com/JaimeStill/accord/pkg/repository"
)

type repo struct {
	db         *sql.DB
	embedder   Embedder
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a clause repository implementing the System interface.
// The embedder is used both at ingestion and at query time so stored and
// query vectors share an embedding space.
func New(
	db *sql.DB,
	embedder Embedder,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		embedder:   embedder,
		logger:     logger.With("system", "clauses"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Clause], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Code", "Text")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count clauses: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanClause)
	if err != nil {
		return nil, fmt.Errorf("query clauses: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Clause, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanClause)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Clause, error) {
	if strings.TrimSpace(cmd.Text) == "" {
		return nil, ErrEmptyText
	}

	embedding, err := r.embedder.Embed(ctx, cmd.Text)
	if err != nil {
		return nil, fmt.Errorf("embed clause %s: %w", cmd.Code, err)
	}

	q := `
		INSERT INTO clauses(id, code, clause_type, partnership_type, text, embedding)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, code, clause_type, partnership_type, text, created_at`

	args := []any{
		uuid.New(),
		cmd.Code,
		cmd.ClauseType,
		cmd.PartnershipType,
		cmd.Text,
		VectorLiteral(embedding),
	}

	c, err := repository.QueryOne(ctx, r.db, q, args, scanClause)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("clause ingested",
		"id", c.ID,
		"code", c.Code,
		"clause_type", c.ClauseType,
	)
	return &c, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM clauses WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("clause deleted", "id", id)
	return nil
}

func (r *repo) Search(ctx context.Context, cmd SearchCommand) ([]Clause, error) {
	if strings.TrimSpace(cmd.Query) == "" {
		return nil, ErrEmptyQuery
	}

	topK := cmd.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}

	embedding, err := r.embedder.Embed(ctx, cmd.Query)
	if err != nil {
		return nil, fmt.Errorf("embed search query: %w", err)
	}

	q := `
		SELECT id, code, clause_type, partnership_type, text, created_at
		FROM clauses
		ORDER BY embedding <=> $1
		LIMIT $2`

	items, err := repository.QueryMany(ctx, r.db, q, []any{VectorLiteral(embedding), topK}, scanClause)
	if err != nil {
		return nil, fmt.Errorf("search clauses: %w", err)
	}

	r.logger.Debug("clauses retrieved",
		"top_k", topK,
		"returned", len(items),
	)
	return items, nil
}

// VectorLiteral renders an embedding as a pgvector text literal so it can
// travel through database/sql as a plain string parameter.
func VectorLiteral(embedding []float32) string {
	var b strings.Builder
	b.WriteByte('[')

	for i, v := range embedding {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(v), 'f', -1, 32))
	}

	b.WriteByte(']')
	return b.String()
}
