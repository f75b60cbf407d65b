// Package clauses implements the clause library for Accord. It stores
// reusable agreement clauses alongside their text embeddings and retrieves
// the clauses most relevant to a drafted agreement by vector similarity.
package clauses

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTopK is the number of clauses retrieved when a caller does not
// request a specific count.
const DefaultTopK = 5

// Clause represents a stored agreement clause. Code is the natural key
// carried over from the source clause library.
type Clause struct {
	ID              uuid.UUID `json:"id"`
	Code            string    `json:"code"`
	ClauseType      string    `json:"clause_type"`
	PartnershipType string    `json:"partnership_type"`
	Text            string    `json:"text"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreateCommand carries the data needed to ingest a clause. The clause text
// is embedded at ingestion time with the same model used for retrieval.
type CreateCommand struct {
	Code            string `json:"code"`
	ClauseType      string `json:"clause_type"`
	PartnershipType string `json:"partnership_type"`
	Text            string `json:"text"`
}

// SearchCommand carries a semantic retrieval request. TopK falls back to
// DefaultTopK when zero or negative.
type SearchCommand struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}
