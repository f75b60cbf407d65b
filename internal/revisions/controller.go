package revisions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pmezard/go-difflib/difflib"
)

// Store is the revision history a Controller reads and appends to.
// ListBySubject returns revisions in insertion order, oldest first.
// Append must reject a (subject, number) collision with ErrConflict.
type Store interface {
	ListBySubject(ctx context.Context, subject string) ([]Revision, error)
	Append(ctx context.Context, rev Revision) (*Revision, error)
}

// saveAttempts bounds optimistic retries when concurrent writers race on
// the same subject before ErrConflict surfaces to the caller.
const saveAttempts = 3

// Controller assigns version numbers and computes revision diffs.
type Controller struct {
	store  Store
	logger *slog.Logger
}

// NewController creates a Controller over the given store.
func NewController(store Store, logger *slog.Logger) *Controller {
	return &Controller{
		store:  store,
		logger: logger.With("system", "revisions"),
	}
}

// Save assigns the next version for cmd.Subject and persists a new revision
// unless the candidate matches the latest stored revision exactly.
//
// The version number is the count of prior revisions plus one; insertion
// order is the ordering key. The diff is always computed before persisting,
// against storage as read at the start of the attempt. The read-diff-write
// sequence is not atomic, so the append is guarded optimistically: a lost
// race yields ErrConflict from the store and the whole sequence is retried
// against fresh history, a bounded number of times.
func (c *Controller) Save(ctx context.Context, cmd SaveCommand) (*Result, error) {
	var lastErr error

	for attempt := 1; attempt <= saveAttempts; attempt++ {
		result, err := c.save(ctx, cmd)
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, ErrConflict) {
			return nil, err
		}

		lastErr = err
		c.logger.Warn("revision append lost race, retrying",
			"subject", cmd.Subject,
			"attempt", attempt,
		)
	}

	return nil, fmt.Errorf("save revision for %s: %w", cmd.Subject, lastErr)
}

func (c *Controller) save(ctx context.Context, cmd SaveCommand) (*Result, error) {
	history, err := c.store.ListBySubject(ctx, cmd.Subject)
	if err != nil {
		return nil, fmt.Errorf("list revisions for %s: %w", cmd.Subject, err)
	}

	number := len(history) + 1
	version := VersionTag(number)

	if len(history) == 0 {
		if err := c.append(ctx, cmd, number, DiffInitial); err != nil {
			return nil, err
		}
		return &Result{Version: version, Diff: DiffInitial, Persisted: true}, nil
	}

	previous := history[len(history)-1]
	typeChanged := cmd.PartnershipType != previous.PartnershipType
	textChanged := cmd.Body != previous.Body

	if !typeChanged && !textChanged {
		return &Result{Version: version, Diff: DiffNoChange, Persisted: false}, nil
	}

	diff, err := buildDiff(previous, cmd, version, typeChanged, textChanged)
	if err != nil {
		return nil, err
	}

	if err := c.append(ctx, cmd, number, diff); err != nil {
		return nil, err
	}

	c.logger.Info("revision saved",
		"subject", cmd.Subject,
		"version", version,
		"type_changed", typeChanged,
		"text_changed", textChanged,
	)
	return &Result{Version: version, Diff: diff, Persisted: true}, nil
}

func (c *Controller) append(ctx context.Context, cmd SaveCommand, number int, diff string) error {
	_, err := c.store.Append(ctx, Revision{
		Subject:         cmd.Subject,
		PartnershipType: cmd.PartnershipType,
		Body:            cmd.Body,
		Number:          number,
		Version:         VersionTag(number),
		Diff:            diff,
	})
	return err
}

// buildDiff concatenates a one-line type-change notice (when the type
// changed) with a unified line diff of the body (when the text changed).
func buildDiff(previous Revision, cmd SaveCommand, version string, typeChanged, textChanged bool) (string, error) {
	var report string

	if typeChanged {
		report = fmt.Sprintf(
			"partnership type changed: %s -> %s",
			previous.PartnershipType,
			cmd.PartnershipType,
		)
	}

	if textChanged {
		text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(previous.Body),
			B:        difflib.SplitLines(cmd.Body),
			FromFile: previous.Version,
			ToFile:   version,
			Context:  3,
		})
		if err != nil {
			return "", fmt.Errorf("compute diff: %w", err)
		}

		if report != "" {
			report += "\n"
		}
		report += text
	}

	return report, nil
}
