// Package revisions implements versioned document history for Accord.
// Each saved revision of an agreement's draft gets a monotonically
// increasing version number per subject, plus a human-readable diff against
// the immediately preceding revision. Identical resubmissions are
// deduplicated: they report "no change" and persist nothing.
package revisions

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Diff markers for the two short-circuit branches.
const (
	DiffInitial  = "initial version"
	DiffNoChange = "no change"
)

// Revision is one stored snapshot of a subject's draft text and type.
// Number is strictly increasing per subject, assigned from history length at
// save time. Position preserves insertion order across all subjects.
type Revision struct {
	ID              uuid.UUID `json:"id"`
	Subject         string    `json:"subject"`
	PartnershipType string    `json:"partnership_type"`
	Body            string    `json:"body"`
	Number          int       `json:"number"`
	Version         string    `json:"version"`
	Diff            string    `json:"diff"`
	CreatedAt       time.Time `json:"created_at"`
}

// SaveCommand carries a candidate revision for a subject.
type SaveCommand struct {
	Subject         string
	PartnershipType string
	Body            string
}

// Result reports the outcome of a save: the assigned version tag, the diff
// against the prior revision (or a marker), and whether a new revision row
// was persisted.
type Result struct {
	Version   string `json:"version"`
	Diff      string `json:"diff"`
	Persisted bool   `json:"persisted"`
}

// VersionTag formats a version number as its wire form, e.g. "v3".
func VersionTag(number int) string {
	return fmt.Sprintf("v%d", number)
}
