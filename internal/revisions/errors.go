package revisions

import "errors"

// Sentinel errors for revision operations.
var (
	ErrNotFound = errors.New("revision not found")

	// ErrConflict indicates an optimistic append lost a race: another writer
	// persisted the same version number for the subject first. The
	// version-assignment step is safe to retry; the whole workflow is not
	// required to rerun.
	ErrConflict = errors.New("concurrent revision conflict")
)
