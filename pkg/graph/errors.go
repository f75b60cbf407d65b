package graph

import (
	"errors"
	"fmt"
)

// ErrCancelled indicates a run was terminated by context cancellation.
// Callers should treat it as "not yet resolved": the run is safe to
// re-invoke, and no partial result should be presented as success.
var ErrCancelled = errors.New("workflow run cancelled")

// ValidationError reports a malformed graph definition detected at Compile.
// Stage names the offending stage when one can be identified.
type ValidationError struct {
	Stage  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Stage == "" {
		return "invalid workflow graph: " + e.Reason
	}
	return fmt.Sprintf("invalid workflow graph: stage %s: %s", e.Stage, e.Reason)
}

// UnroutableOutcomeError reports a decision function returning a label with
// no mapped target. It indicates a programming defect, not a transient
// condition, and aborts the run.
type UnroutableOutcomeError struct {
	Stage   string
	Outcome string
}

func (e *UnroutableOutcomeError) Error() string {
	return fmt.Sprintf("stage %s: no edge for outcome %q", e.Stage, e.Outcome)
}

// VisitLimitError reports a stage exceeding the configured visit ceiling,
// terminating a retry cycle that did not converge.
type VisitLimitError struct {
	Stage  string
	Visits int
}

func (e *VisitLimitError) Error() string {
	return fmt.Sprintf("stage %s: visit limit exceeded after %d visits", e.Stage, e.Visits)
}
