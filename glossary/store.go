// Package glossary holds the term glossary used for tooltips and
// cross-linking, and the loader for the example chips.
package glossary

import (
	"context"
	"log/slog"
	"maps"
	"sync"
)

// Version values for states that did not come from a resource.
const (
	VersionUnknown = "unknown"
	VersionError   = "error"
)

// Entry is the tooltip metadata for one term.
type Entry struct {
	En   string `json:"en"`
	Desc string `json:"desc"`
}

// State is a snapshot of the glossary.
type State struct {
	Version string           `json:"version"`
	Terms   map[string]Entry `json:"terms"`
	Loaded  bool             `json:"loaded"`
}

// resource is the on-the-wire glossary format.
type resource struct {
	Version string           `json:"version"`
	Terms   map[string]Entry `json:"terms"`
}

// Store owns the glossary state. It starts unloaded and is replaced
// wholesale by each Load; readers never observe a partial update.
type Store struct {
	mu      sync.RWMutex
	state   State
	lastErr error
	src     Source
	logger  *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger for load failures and reload diffs.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New creates an unloaded store reading from src.
func New(src Source, opts ...Option) *Store {
	s := &Store{
		state:  emptyState(VersionUnknown),
		src:    src,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewFromState creates a store already holding st. Intended for tests and
// for callers that build the glossary themselves.
func NewFromState(st State) *Store {
	s := New(nil)
	s.state = cloneState(st)
	return s
}

func emptyState(version string) State {
	return State{Version: version, Terms: map[string]Entry{}, Loaded: false}
}

// Load fetches the glossary resource and replaces the state. A failure
// resets the store to the error state and is recorded in LastError; it is
// not returned, so callers keep working with an empty glossary.
func (s *Store) Load(ctx context.Context) State {
	var res resource
	err := Decode(ctx, s.src, &res)

	next := emptyState(VersionError)
	if err == nil {
		next.Version = res.Version
		if next.Version == "" {
			next.Version = VersionUnknown
		}
		if res.Terms != nil {
			next.Terms = res.Terms
		}
		next.Loaded = true
	}

	s.mu.Lock()
	prev := s.state
	s.state = next
	s.lastErr = err
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("failed to load glossary", slog.Any("error", err))
		return cloneState(next)
	}

	if prev.Loaded {
		if d := Diff(prev, next); d.HasChanges() {
			stats := d.Stats()
			s.logger.Info("glossary reloaded",
				slog.String("version", next.Version),
				slog.Int("added", stats.Added),
				slog.Int("removed", stats.Removed),
				slog.Int("changed", stats.Changed),
			)
		}
	} else {
		s.logger.Info("glossary loaded",
			slog.String("version", next.Version),
			slog.Int("terms", len(next.Terms)),
		)
	}

	return cloneState(next)
}

// Lookup returns the entry for term. An empty term, an unknown term, or an
// unloaded store all report false.
func (s *Store) Lookup(term string) (Entry, bool) {
	if s == nil || term == "" {
		return Entry{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.state.Terms[term]
	return e, ok
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneState(s.state)
}

// Version returns the loaded glossary version.
func (s *Store) Version() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Version
}

// Loaded reports whether the last load succeeded.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Loaded
}

// LastError returns the failure recorded by the last Load, if any.
func (s *Store) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func cloneState(st State) State {
	out := st
	out.Terms = maps.Clone(st.Terms)
	if out.Terms == nil {
		out.Terms = map[string]Entry{}
	}
	return out
}
