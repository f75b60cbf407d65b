// Package approvals implements the stakeholder approval domain for Accord.
// It provides per-recipient approval records, the status vocabulary, and the
// polling loop that blocks a workflow run until every recipient has left the
// transient idle state.
package approvals

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is a recipient's approval state.
type Status string

// Approval statuses. Idle means the recipient is actively reviewing and
// blocks the polling loop; Pending means the recipient has not engaged and
// does not block.
const (
	StatusApproved Status = "approved"
	StatusPending  Status = "pending"
	StatusIdle     Status = "idle"
)

// ParseStatus normalizes a wire status string. Matching is case-insensitive.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusApproved:
		return StatusApproved, nil
	case StatusPending:
		return StatusPending, nil
	case StatusIdle:
		return StatusIdle, nil
	}
	return "", ErrInvalidStatus
}

// UnmarshalJSON validates and normalizes a decoded status value.
func (s *Status) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	v, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Approval records one recipient's current status for an agreement.
type Approval struct {
	ID          uuid.UUID  `json:"id"`
	AgreementID uuid.UUID  `json:"agreement_id"`
	Recipient   string     `json:"recipient"`
	Status      Status     `json:"status"`
	DecidedAt   *time.Time `json:"decided_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// DecideCommand carries a stakeholder's status update for an agreement.
type DecideCommand struct {
	Recipient string `json:"recipient"`
	Status    Status `json:"status"`
}
