package recipients

import (
	"net/url"
	"strconv"

	"github.com/JaimeStill/accord/pkg/query"
	"github.com/JaimeStill/accord/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "recipients", "r").
	Project("id", "ID").
	Project("name", "Name").
	Project("email", "Email").
	Project("active", "Active").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field: "Email",
}

// Filters contains optional filtering criteria for recipient queries.
// Nil fields are ignored.
type Filters struct {
	Active *bool `json:"active,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.WhereEquals("Active", f.Active)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if a := values.Get("active"); a != "" {
		if parsed, err := strconv.ParseBool(a); err == nil {
			f.Active = &parsed
		}
	}

	return f
}

func scanRecipient(s repository.Scanner) (Recipient, error) {
	var r Recipient
	err := s.Scan(
		&r.ID,
		&r.Name,
		&r.Email,
		&r.Active,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	return r, err
}
