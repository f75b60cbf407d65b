package agreements

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/accord/internal/drafting"
	"github.com/JaimeStill/accord/internal/workflow"
	"github.com/JaimeStill/accord/pkg/pagination"
	"github.com/JaimeStill/accord/pkg/query"
	"github.com/JaimeStill/accord/pkg/repository"
	"github.com/JaimeStill/accord/pkg/storage"
)

type repo struct {
	db         *sql.DB
	rt         *workflow.Runtime
	storage    storage.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an agreement repository implementing the System interface.
// The workflow runtime is constructed by higher-level composition code from
// Infrastructure and Domain systems.
func New(
	db *sql.DB,
	rt *workflow.Runtime,
	store storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		rt:         rt,
		storage:    store,
		logger:     logger.With("system", "agreements"),
		pagination: pagination,
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxUploadSize)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Agreement], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "CompanyName", "Objective")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count agreements: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanAgreement)
	if err != nil {
		return nil, fmt.Errorf("query agreements: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Agreement, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	a, err := repository.QueryOne(ctx, r.db, q, args, scanAgreement)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &a, nil
}

func (r *repo) Generate(ctx context.Context, cmd GenerateCommand) (*workflow.State, error) {
	intake, err := validateIntake(cmd)
	if err != nil {
		return nil, err
	}

	// The agreement row exists before the workflow starts so reviewers can
	// record decisions against its id while polling is in flight.
	id := uuid.New()
	insertQ := `
		INSERT INTO agreements(id, company_name, partnership_type, objective, scope, mou_date)
		VALUES ($1, $2, $3, $4, $5, $6)`

	if _, err := r.db.ExecContext(ctx, insertQ,
		id, intake.CompanyName, intake.PartnershipType, intake.Objective, intake.Scope, intake.EffectiveDate,
	); err != nil {
		return nil, fmt.Errorf("register agreement: %w", repository.MapError(err, ErrNotFound, ErrDuplicate))
	}

	final, err := workflow.Execute(ctx, r.rt, id, intake)
	if err != nil {
		r.markFailed(id)
		return nil, fmt.Errorf("generate agreement %s: %w", id, err)
	}

	if err := r.persistOutcome(ctx, id, final); err != nil {
		return nil, err
	}

	r.logger.Info("agreement generated",
		"id", id,
		"company", final.CompanyName,
		"version", final.VersionNumber,
		"review_cycles", final.ReviewCycles,
	)
	return final, nil
}

func (r *repo) AttachSigned(ctx context.Context, id uuid.UUID, cmd SignedCommand) (*Agreement, error) {
	if _, err := r.Find(ctx, id); err != nil {
		return nil, err
	}

	key := buildSignedKey(id, sanitizeFilename(cmd.Filename))
	if err := r.storage.Upload(ctx, key, bytes.NewReader(cmd.Data), cmd.ContentType); err != nil {
		return nil, fmt.Errorf("upload signed document: %w", err)
	}

	q := `
		UPDATE agreements
		SET signed_key = $1, signed_pages = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING ` + agreementColumns

	a, err := repository.QueryOne(ctx, r.db, q, []any{key, cmd.PageCount, id}, scanAgreement)
	if err != nil {
		if delErr := r.storage.Delete(ctx, key); delErr != nil {
			r.logger.Warn("compensating blob delete failed", "key", key, "error", delErr)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("signed document attached",
		"id", a.ID,
		"key", key,
		"pages", cmd.PageCount,
	)
	return &a, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	a, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM agreements WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if a.SignedKey != nil {
		if delErr := r.storage.Delete(ctx, *a.SignedKey); delErr != nil {
			r.logger.Warn(
				"blob delete failed after DB delete",
				"key", *a.SignedKey,
				"error", delErr,
			)
		}
	}

	r.logger.Info("agreement deleted", "id", id)
	return nil
}

const agreementColumns = `id, company_name, partnership_type, objective, scope, mou_date,
	draft_text, retrieved_clauses, emails_sent, approval_status, overall_status,
	review_cycles, version_number, version_diff, signed_key, signed_pages,
	created_at, updated_at`

func (r *repo) persistOutcome(ctx context.Context, id uuid.UUID, final *workflow.State) error {
	clausesJSON, err := json.Marshal(final.RetrievedClauses)
	if err != nil {
		return fmt.Errorf("marshal retrieved clauses: %w", err)
	}

	emailsJSON, err := json.Marshal(final.EmailsSent)
	if err != nil {
		return fmt.Errorf("marshal deliveries: %w", err)
	}

	approvalsJSON, err := json.Marshal(final.ApprovalStatus)
	if err != nil {
		return fmt.Errorf("marshal approval statuses: %w", err)
	}

	q := `
		UPDATE agreements
		SET draft_text = $1, retrieved_clauses = $2, emails_sent = $3,
			approval_status = $4, overall_status = $5, review_cycles = $6,
			version_number = $7, version_diff = $8, updated_at = NOW()
		WHERE id = $9`

	if _, err := r.db.ExecContext(ctx, q,
		final.DraftText,
		clausesJSON,
		emailsJSON,
		approvalsJSON,
		string(final.OverallStatus),
		final.ReviewCycles,
		final.VersionNumber,
		final.VersionDiff,
		id,
	); err != nil {
		return fmt.Errorf("persist agreement outcome: %w", err)
	}
	return nil
}

// markFailed flags a registered agreement whose workflow did not complete.
// The update runs on a fresh context so a cancelled run is still recorded.
func (r *repo) markFailed(id uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := r.db.ExecContext(ctx,
		"UPDATE agreements SET overall_status = 'failed', updated_at = NOW() WHERE id = $1",
		id,
	); err != nil {
		r.logger.Warn("failed to mark agreement as failed", "id", id, "error", err)
	}
}

func validateIntake(cmd GenerateCommand) (drafting.Intake, error) {
	intake := drafting.Intake{
		CompanyName:     strings.TrimSpace(cmd.CompanyName),
		PartnershipType: strings.TrimSpace(cmd.PartnershipType),
		Objective:       strings.TrimSpace(cmd.Objective),
		Scope:           strings.TrimSpace(cmd.Scope),
		EffectiveDate:   strings.TrimSpace(cmd.MouDate),
	}

	if intake.CompanyName == "" ||
		intake.PartnershipType == "" ||
		intake.Objective == "" ||
		intake.Scope == "" ||
		intake.EffectiveDate == "" {
		return drafting.Intake{}, ErrInvalidIntake
	}

	if _, err := time.Parse("2006-01-02", intake.EffectiveDate); err != nil {
		return drafting.Intake{}, fmt.Errorf("%w: %s", ErrInvalidDate, cmd.MouDate)
	}

	return intake, nil
}

func buildSignedKey(id uuid.UUID, filename string) string {
	return fmt.Sprintf("agreements/%s/signed/%s", id, filename)
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == "" {
		name = "agreement"
	}
	return url.PathEscape(name)
}
