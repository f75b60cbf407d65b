package approvals

import "errors"

// Sentinel errors for approval operations.
var (
	ErrNotFound      = errors.New("approval not found")
	ErrDuplicate     = errors.New("approval already exists")
	ErrInvalidStatus = errors.New("invalid approval status")
)
