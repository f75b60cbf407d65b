package agreements

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/JaimeStill/accord/internal/notify"
	"github.com/JaimeStill/accord/internal/workflow"
	"github.com/JaimeStill/accord/pkg/query"
	"github.com/JaimeStill/accord/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "agreements", "a").
	Project("id", "ID").
	Project("company_name", "CompanyName").
	Project("partnership_type", "PartnershipType").
	Project("objective", "Objective").
	Project("scope", "Scope").
	Project("mou_date", "MouDate").
	Project("draft_text", "DraftText").
	Project("retrieved_clauses", "RetrievedClauses").
	Project("emails_sent", "EmailsSent").
	Project("approval_status", "ApprovalStatus").
	Project("overall_status", "OverallStatus").
	Project("review_cycles", "ReviewCycles").
	Project("version_number", "VersionNumber").
	Project("version_diff", "VersionDiff").
	Project("signed_key", "SignedKey").
	Project("signed_pages", "SignedPages").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for agreement queries.
// Nil fields are ignored. All fields use exact matching.
type Filters struct {
	PartnershipType *string `json:"partnership_type,omitempty"`
	OverallStatus   *string `json:"overall_status,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("PartnershipType", f.PartnershipType).
		WhereEquals("OverallStatus", f.OverallStatus)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if p := values.Get("partnership_type"); p != "" {
		f.PartnershipType = &p
	}

	if s := values.Get("overall_status"); s != "" {
		f.OverallStatus = &s
	}

	return f
}

func scanAgreement(s repository.Scanner) (Agreement, error) {
	var a Agreement
	var clausesRaw, emailsRaw, approvalsRaw []byte

	err := s.Scan(
		&a.ID,
		&a.CompanyName,
		&a.PartnershipType,
		&a.Objective,
		&a.Scope,
		&a.MouDate,
		&a.DraftText,
		&clausesRaw,
		&emailsRaw,
		&approvalsRaw,
		&a.OverallStatus,
		&a.ReviewCycles,
		&a.VersionNumber,
		&a.VersionDiff,
		&a.SignedKey,
		&a.SignedPages,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return a, err
	}

	if len(clausesRaw) > 0 {
		if err := json.Unmarshal(clausesRaw, &a.RetrievedClauses); err != nil {
			return a, fmt.Errorf("unmarshal retrieved_clauses: %w", err)
		}
	}
	if len(emailsRaw) > 0 {
		if err := json.Unmarshal(emailsRaw, &a.EmailsSent); err != nil {
			return a, fmt.Errorf("unmarshal emails_sent: %w", err)
		}
	}
	if len(approvalsRaw) > 0 {
		if err := json.Unmarshal(approvalsRaw, &a.ApprovalStatus); err != nil {
			return a, fmt.Errorf("unmarshal approval_status: %w", err)
		}
	}

	if a.RetrievedClauses == nil {
		a.RetrievedClauses = []workflow.RetrievedClause{}
	}
	if a.EmailsSent == nil {
		a.EmailsSent = []notify.Delivery{}
	}

	return a, nil
}
