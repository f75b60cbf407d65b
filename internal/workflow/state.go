// Package workflow orchestrates agreement generation: drafting, clause
// retrieval, recipient notification, approval polling, and versioning,
// executed as a compiled stage graph with a conditional review cycle.
package workflow

import (
	"github.com/google/uuid"

	"github.com/JaimeStill/accord/internal/approvals"
	"github.com/JaimeStill/accord/internal/notify"
)

// Stage names in execution order. The await stage routes back to notify
// while the aggregate outcome is pending, forming the review cycle.
const (
	StageDraft       = "draft"
	StageClauses     = "retrieve_clauses"
	StageNotify      = "notify"
	StageAwait       = "await_approval"
	StageSaveVersion = "save_version"
)

// Outcome labels produced by the approval router.
const (
	OutcomeApproved = "approved"
	OutcomePending  = "pending"
)

// RetrievedClause is the read-only projection of a stored clause carried on
// the state: identity, taxonomy, and text. Order reflects retrieval rank,
// most relevant first.
type RetrievedClause struct {
	ClauseID        uuid.UUID `json:"clause_id"`
	ClauseType      string    `json:"clause_type"`
	PartnershipType string    `json:"partnership_type"`
	Text            string    `json:"text"`
}

// State is the typed document that flows through the agreement workflow.
// Each stage extends or overwrites its own fields and leaves the rest
// intact. The populated struct is the workflow's final result.
type State struct {
	AgreementID     uuid.UUID `json:"agreement_id"`
	CompanyName     string    `json:"company_name"`
	PartnershipType string    `json:"partnership_type"`
	Objective       string    `json:"objective"`
	Scope           string    `json:"scope"`
	MouDate         string    `json:"mou_date"`

	DraftText        string            `json:"draft_text"`
	RetrievedClauses []RetrievedClause `json:"retrieved_clauses"`

	EmailsSent     []notify.Delivery           `json:"emails_sent"`
	ApprovalStatus map[string]approvals.Status `json:"approval_status"`
	OverallStatus  approvals.Status            `json:"overall_status"`
	ReviewCycles   int                         `json:"review_cycles"`

	VersionNumber string `json:"version_number"`
	VersionDiff   string `json:"version_diff"`
}

// RouteApproval maps the aggregate approval outcome to an edge label. It is
// the only decision point in the graph and inspects nothing but the state.
func RouteApproval(s State) string {
	if s.OverallStatus == approvals.StatusApproved {
		return OutcomeApproved
	}
	return OutcomePending
}
