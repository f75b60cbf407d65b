// Package agreements implements the agreement domain for Accord.
// It provides types, data access, and business logic for generating
// memorandum-of-understanding drafts through the workflow engine,
// persisting their outcomes, and archiving countersigned documents.
package agreements

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/accord/internal/approvals"
	"github.com/JaimeStill/accord/internal/notify"
	"github.com/JaimeStill/accord/internal/workflow"
)

// Agreement represents a generated agreement with its workflow outcome and
// an optional reference to the countersigned document in blob storage.
type Agreement struct {
	ID              uuid.UUID `json:"id"`
	CompanyName     string    `json:"company_name"`
	PartnershipType string    `json:"partnership_type"`
	Objective       string    `json:"objective"`
	Scope           string    `json:"scope"`
	MouDate         string    `json:"mou_date"`

	DraftText        string                      `json:"draft_text"`
	RetrievedClauses []workflow.RetrievedClause  `json:"retrieved_clauses"`
	EmailsSent       []notify.Delivery           `json:"emails_sent"`
	ApprovalStatus   map[string]approvals.Status `json:"approval_status"`
	OverallStatus    string                      `json:"overall_status"`
	ReviewCycles     int                         `json:"review_cycles"`
	VersionNumber    string                      `json:"version_number"`
	VersionDiff      string                      `json:"version_diff"`

	SignedKey   *string `json:"signed_key"`
	SignedPages *int    `json:"signed_pages"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GenerateCommand carries the intake details a generation run starts from.
// MouDate is the agreement's effective date in YYYY-MM-DD form.
type GenerateCommand struct {
	CompanyName     string `json:"company_name"`
	PartnershipType string `json:"partnership_type"`
	Objective       string `json:"objective"`
	Scope           string `json:"scope"`
	MouDate         string `json:"mou_date"`
}

// SignedCommand carries an uploaded countersigned document.
// Data holds the raw file bytes. PageCount is optional and may be extracted
// by the caller via pdfcpu; nil values are stored as NULL.
type SignedCommand struct {
	Data        []byte
	Filename    string
	ContentType string
	PageCount   *int
}
