// Package recipients implements the stakeholder directory for Accord.
// Recipients are the reviewers notified when an agreement draft is ready
// and whose approvals gate versioning.
package recipients

import (
	"time"

	"github.com/google/uuid"
)

// Recipient represents a stakeholder who reviews agreement drafts.
// Email is unique across the directory.
type Recipient struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to register a recipient.
type CreateCommand struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UpdateCommand carries the data needed to update a recipient.
// Deactivated recipients stay in the directory but are excluded from
// notification and approval rounds.
type UpdateCommand struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Active bool   `json:"active"`
}
