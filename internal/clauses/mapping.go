package clauses

import (
	"net/url"

	"github.com/JaimeStill/accord/pkg/query"
	"github.com/JaimeStill/accord/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "clauses", "c").
	Project("id", "ID").
	Project("code", "Code").
	Project("clause_type", "ClauseType").
	Project("partnership_type", "PartnershipType").
	Project("text", "Text").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field: "Code",
}

// Filters contains optional filtering criteria for clause queries.
// Nil fields are ignored. All fields use exact matching.
type Filters struct {
	ClauseType      *string `json:"clause_type,omitempty"`
	PartnershipType *string `json:"partnership_type,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("ClauseType", f.ClauseType).
		WhereEquals("PartnershipType", f.PartnershipType)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if c := values.Get("clause_type"); c != "" {
		f.ClauseType = &c
	}

	if p := values.Get("partnership_type"); p != "" {
		f.PartnershipType = &p
	}

	return f
}

func scanClause(s repository.Scanner) (Clause, error) {
	var c Clause
	err := s.Scan(
		&c.ID,
		&c.Code,
		&c.ClauseType,
		&c.PartnershipType,
		&c.Text,
		&c.CreatedAt,
	)
	return c, err
}
