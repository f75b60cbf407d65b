package graph

type config struct {
	maxVisits int
	observer  func(Transition)
}

// Option configures graph execution behavior.
type Option func(*config)

// WithMaxVisits bounds how many times any single stage may execute within
// one run. Zero (the default) means unbounded, preserving indefinite retry
// cycles; a positive ceiling terminates a non-converging cycle with a
// VisitLimitError.
func WithMaxVisits(n int) Option {
	return func(c *config) {
		c.maxVisits = n
	}
}

// WithObserver registers a callback invoked after every edge traversal.
// Observers receive the visit count of the source stage, exposing retry
// cycles for logging and metrics. The callback runs synchronously on the
// executing goroutine and must not block.
func WithObserver(fn func(Transition)) Option {
	return func(c *config) {
		c.observer = fn
	}
}
