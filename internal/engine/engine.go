package engine

import "strings"

// Engine is the single owning handle through which all round-state mutation
// flows. It wraps one Snapshot; callers own locking and persistence around
// it (one logical writer at a time).
type Engine struct {
	snap  *Snapshot
	clock Clock
	newID func() string
}

type Option func(*Engine)

func WithClock(c Clock) Option {
	return func(e *Engine) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithIDFunc overrides event/round ID generation, mainly for deterministic
// tests.
func WithIDFunc(fn func() string) Option {
	return func(e *Engine) {
		if fn != nil {
			e.newID = fn
		}
	}
}

func New(snap *Snapshot, opts ...Option) *Engine {
	e := &Engine{snap: snap, clock: SystemClock(), newID: NewID}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Snapshot() *Snapshot { return e.snap }

func (e *Engine) GameByID(id string) (*Game, bool) {
	for _, g := range e.snap.Games {
		if g.ID == id {
			return g, true
		}
	}
	return nil, false
}

func (e *Engine) RoundByID(id string) (*Round, bool) {
	for _, r := range e.snap.Rounds {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}

// LiveRound resolves the live pointer to its round. A pointer naming a
// missing round reports not-live rather than panicking on a torn document.
func (e *Engine) LiveRound() (*Round, bool) {
	if !e.snap.Live.IsLive || e.snap.Live.RoundID == "" {
		return nil, false
	}
	return e.RoundByID(e.snap.Live.RoundID)
}

func (e *Engine) streamerByID(id string) (*Streamer, bool) {
	for _, s := range e.snap.Streamers {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

func equalUser(a, b string) bool { return strings.EqualFold(a, b) }
