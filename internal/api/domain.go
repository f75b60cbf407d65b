package api

import (
	"fmt"

	"github.com/JaimeStill/accord/internal/agreements"
	"github.com/JaimeStill/accord/internal/approvals"
	"github.com/JaimeStill/accord/internal/clauses"
	"github.com/JaimeStill/accord/internal/config"
	"github.com/JaimeStill/accord/internal/drafting"
	"github.com/JaimeStill/accord/internal/notify"
	"github.com/JaimeStill/accord/internal/recipients"
	"github.com/JaimeStill/accord/internal/revisions"
	"github.com/JaimeStill/accord/internal/workflow"
	"github.com/JaimeStill/accord/pkg/clock"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Agreements agreements.System
	Approvals  approvals.System
	Clauses    clauses.System
	Recipients recipients.System
	Revisions  revisions.Store
}

// NewDomain creates all domain systems from the API runtime and wires the
// workflow runtime that agreement generation executes against.
func NewDomain(cfg *config.Config, runtime *Runtime) (*Domain, error) {
	db := runtime.Database.Connection()
	clk := clock.System()

	embedder := clauses.NewHTTPEmbedder(cfg.Embeddings.URL, cfg.Embeddings.TimeoutDuration())
	clausesSystem := clauses.New(db, embedder, runtime.Logger, runtime.Pagination)

	recipientsSystem := recipients.New(db, runtime.Logger, runtime.Pagination)
	approvalsSystem := approvals.New(db, runtime.Logger)

	revisionStore := revisions.NewStore(db, runtime.Logger)
	controller := revisions.NewController(revisionStore, runtime.Logger)

	mailer, err := notify.NewSMTPMailer(
		cfg.Mail.Host,
		cfg.Mail.Port,
		cfg.Mail.Username,
		cfg.Mail.Password,
		cfg.Mail.From,
	)
	if err != nil {
		return nil, fmt.Errorf("create mailer: %w", err)
	}

	rt := &workflow.Runtime{
		Drafter:    drafting.NewAgentDrafter(cfg.Agent, runtime.Logger),
		Clauses:    clausesSystem,
		Recipients: recipientsSystem,
		Notifier:   notify.NewNotifier(mailer, runtime.Logger),
		Poller: approvals.NewPoller(
			approvalsSystem,
			clk,
			cfg.Workflow.PollIntervalDuration(),
			runtime.Logger,
		),
		Revisions: controller,
		Clock:     clk,
		Logger:    runtime.Logger.With("workflow", "agreement"),
		Options: workflow.Options{
			TopK:            cfg.Workflow.TopK,
			ResendDelay:     cfg.Workflow.PollIntervalDuration(),
			MaxReviewCycles: cfg.Workflow.MaxReviewCycles,
		},
	}

	agreementsSystem := agreements.New(
		db,
		rt,
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	return &Domain{
		Agreements: agreementsSystem,
		Approvals:  approvalsSystem,
		Clauses:    clausesSystem,
		Recipients: recipientsSystem,
		Revisions:  revisionStore,
	}, nil
}
