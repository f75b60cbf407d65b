package graph

import (
	"errors"
	"maps"
)

// Builder assembles a workflow graph declaratively. Registration and edge
// definitions record problems instead of failing immediately; Compile
// reports every accumulated and structural error at once.
type Builder[S any] struct {
	stages map[string]Handler[S]
	order  []string
	edges  map[string]edge[S]
	entry  string
	config config
	errs   []error
}

// New creates an empty Builder. Options configure the compiled graph's
// execution behavior (visit limits, transition observer).
func New[S any](opts ...Option) *Builder[S] {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Builder[S]{
		stages: make(map[string]Handler[S]),
		edges:  make(map[string]edge[S]),
		config: cfg,
	}
}

// Register adds a named stage with its handler. Names must be unique and
// may not be the End sentinel.
func (b *Builder[S]) Register(stage string, handler Handler[S]) *Builder[S] {
	switch {
	case stage == "":
		b.errs = append(b.errs, &ValidationError{Reason: "stage name must not be empty"})
	case stage == End:
		b.errs = append(b.errs, &ValidationError{Stage: stage, Reason: "END is reserved"})
	case handler == nil:
		b.errs = append(b.errs, &ValidationError{Stage: stage, Reason: "handler must not be nil"})
	default:
		if _, exists := b.stages[stage]; exists {
			b.errs = append(b.errs, &ValidationError{Stage: stage, Reason: "duplicate stage"})
			return b
		}
		b.stages[stage] = handler
		b.order = append(b.order, stage)
	}
	return b
}

// Connect adds an unconditional edge from one stage to another (or to End).
func (b *Builder[S]) Connect(from, to string) *Builder[S] {
	if !b.claimEdge(from) {
		return b
	}
	b.edges[from] = edge[S]{to: to}
	return b
}

// ConnectConditional adds a conditional edge: after from's handler returns,
// decide is invoked with the merged state and its outcome label is resolved
// through the outcomes map to the next stage. Outcome targets may be End.
func (b *Builder[S]) ConnectConditional(from string, decide Decision[S], outcomes map[string]string) *Builder[S] {
	if !b.claimEdge(from) {
		return b
	}
	if decide == nil {
		b.errs = append(b.errs, &ValidationError{Stage: from, Reason: "decision function must not be nil"})
		return b
	}
	if len(outcomes) == 0 {
		b.errs = append(b.errs, &ValidationError{Stage: from, Reason: "conditional edge requires at least one outcome"})
		return b
	}
	b.edges[from] = edge[S]{decide: decide, outcomes: maps.Clone(outcomes)}
	return b
}

// SetEntry designates the stage execution starts from.
func (b *Builder[S]) SetEntry(stage string) *Builder[S] {
	b.entry = stage
	return b
}

// Compile validates the graph and produces an executable Graph. It fails
// when any stage or edge definition was invalid, the entry point is missing
// or unregistered, an edge references an unregistered stage, a non-terminal
// stage lacks an outgoing edge, or no decision outcome can reach End.
func (b *Builder[S]) Compile() (*Graph[S], error) {
	errs := b.errs

	if b.entry == "" {
		errs = append(errs, &ValidationError{Reason: "no entry stage set"})
	} else if _, ok := b.stages[b.entry]; !ok {
		errs = append(errs, &ValidationError{Stage: b.entry, Reason: "entry stage not registered"})
	}

	errs = append(errs, b.validateEdges()...)

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	if !b.reachesEnd() {
		return nil, &ValidationError{Stage: b.entry, Reason: "no path to END"}
	}

	return &Graph[S]{
		stages: maps.Clone(b.stages),
		edges:  maps.Clone(b.edges),
		entry:  b.entry,
		config: b.config,
	}, nil
}

func (b *Builder[S]) claimEdge(from string) bool {
	if _, ok := b.stages[from]; !ok {
		b.errs = append(b.errs, &ValidationError{Stage: from, Reason: "edge source not registered"})
		return false
	}
	if _, dup := b.edges[from]; dup {
		b.errs = append(b.errs, &ValidationError{Stage: from, Reason: "stage already has an outgoing edge"})
		return false
	}
	return true
}

func (b *Builder[S]) validateEdges() []error {
	var errs []error

	check := func(from, to string) {
		if to == End {
			return
		}
		if _, ok := b.stages[to]; !ok {
			errs = append(errs, &ValidationError{Stage: from, Reason: "edge target " + to + " not registered"})
		}
	}

	for _, stage := range b.order {
		e, ok := b.edges[stage]
		if !ok {
			errs = append(errs, &ValidationError{Stage: stage, Reason: "no outgoing edge"})
			continue
		}
		if e.decide == nil {
			check(stage, e.to)
			continue
		}
		for _, to := range e.outcomes {
			check(stage, to)
		}
	}

	return errs
}

// reachesEnd walks every edge as if each decision outcome were possible,
// verifying that at least one path from the entry terminates. Cycles whose
// outcomes never lead to End make the graph invalid.
func (b *Builder[S]) reachesEnd() bool {
	seen := make(map[string]bool, len(b.stages))
	frontier := []string{b.entry}

	for len(frontier) > 0 {
		stage := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		if stage == End {
			return true
		}
		if seen[stage] {
			continue
		}
		seen[stage] = true

		e := b.edges[stage]
		if e.decide == nil {
			frontier = append(frontier, e.to)
			continue
		}
		for _, to := range e.outcomes {
			frontier = append(frontier, to)
		}
	}

	return false
}
