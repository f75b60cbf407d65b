package drafting

import "errors"

// Sentinel errors for draft generation.
var (
	ErrGenerateFailed = errors.New("draft generation failed")
	ErrEmptyDraft     = errors.New("model returned an empty draft")
)
