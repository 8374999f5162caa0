package reactivity

import (
	"log/slog"
)

// System is the tracking context shared by a graph of deps and subscribers.
// Independent Systems never interact.
type System struct {
	activeSub   Subscriber
	shouldTrack bool
	trackStack  []bool

	globalVersion uint64

	batchDepth      int
	batchHead       *ReactiveEffect
	batchTail       *ReactiveEffect
	batchedComputed *computed
	batchErr        error

	activeScope *Scope
	targets     map[any]map[any]*Dep

	logger     *slog.Logger
	instrument Instrument
}

// Option configures a System.
type Option func(*System)

// WithLogger sets the logger used for developer warnings.
// If nil, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(s *System) {
		s.logger = logger
	}
}

// WithInstrument installs an Instrument that observes effect runs, computed
// refreshes and batch flushes.
func WithInstrument(instrument Instrument) Option {
	return func(s *System) {
		s.instrument = instrument
	}
}

func New(opts ...Option) *System {
	s := &System{
		shouldTrack: true,
		targets:     map[any]map[any]*Dep{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// GlobalVersion is incremented on every write to any Dep of this System.
func (s *System) GlobalVersion() uint64 {
	return s.globalVersion
}

// ActiveSubscriber returns the subscriber currently collecting dependencies,
// or nil.
func (s *System) ActiveSubscriber() Subscriber {
	return s.activeSub
}

// Tracking reports whether a read made right now would create a Link.
func (s *System) Tracking() bool {
	return s.shouldTrack && s.activeSub != nil
}

// PauseTracking disables link creation until the matching ResetTracking.
func (s *System) PauseTracking() {
	s.trackStack = append(s.trackStack, s.shouldTrack)
	s.shouldTrack = false
}

// EnableTracking re-enables link creation inside a paused region until the
// matching ResetTracking.
func (s *System) EnableTracking() {
	s.trackStack = append(s.trackStack, s.shouldTrack)
	s.shouldTrack = true
}

// ResetTracking restores the state saved by the last PauseTracking or
// EnableTracking call.
func (s *System) ResetTracking() {
	last := len(s.trackStack) - 1
	if last < 0 {
		s.warn("ResetTracking called without a matching PauseTracking or EnableTracking")
		s.shouldTrack = true
		return
	}
	s.shouldTrack = s.trackStack[last]
	s.trackStack = s.trackStack[:last]
}

// Untracked runs fn with tracking paused.
func (s *System) Untracked(fn func()) {
	s.PauseTracking()
	defer s.ResetTracking()
	fn()
}

func (s *System) warn(msg string, args ...any) {
	s.logger.Warn("reactivity: "+msg, args...)
}
