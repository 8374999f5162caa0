package reactivity

import "time"

// EffectFunc is the body of an effect. A returned error is surfaced to
// whoever caused the run: the Run caller, or the initiator of the batch.
type EffectFunc func() error

// ReactiveEffect is an eagerly re-run subscriber.
type ReactiveEffect struct {
	sub
	sys *System
	fn  EffectFunc

	scheduler func() error
	onStop    func()

	nextInBatch *ReactiveEffect
}

// EffectOption configures a ReactiveEffect.
type EffectOption func(*ReactiveEffect)

// WithScheduler makes Trigger call scheduler instead of re-running the
// effect. The scheduler decides when (or whether) to call Run.
func WithScheduler(scheduler func() error) EffectOption {
	return func(e *ReactiveEffect) {
		e.scheduler = scheduler
	}
}

// AllowRecurse lets writes made by the effect's own run trigger it again.
// The effect body is responsible for terminating.
func AllowRecurse() EffectOption {
	return func(e *ReactiveEffect) {
		e.flags |= FlagAllowRecurse
	}
}

// NoBatch triggers the effect synchronously from the write instead of
// queueing it until the batch ends.
func NoBatch() EffectOption {
	return func(e *ReactiveEffect) {
		e.flags |= FlagNoBatch
	}
}

func OnStop(fn func()) EffectOption {
	return func(e *ReactiveEffect) {
		e.onStop = fn
	}
}

func OnTrack(fn func(DebuggerEvent)) EffectOption {
	return func(e *ReactiveEffect) {
		e.onTrack = fn
	}
}

func OnTrigger(fn func(DebuggerEvent)) EffectOption {
	return func(e *ReactiveEffect) {
		e.onTrigger = fn
	}
}

// EffectName sets the debug label of the effect.
func EffectName(name string) EffectOption {
	return func(e *ReactiveEffect) {
		e.name = name
	}
}

// NewEffect creates an active effect without running it. Effects created
// while a Scope is running are recorded in that scope.
func NewEffect(sys *System, fn EffectFunc, opts ...EffectOption) *ReactiveEffect {
	e := &ReactiveEffect{
		sys: sys,
		fn:  fn,
		sub: sub{flags: FlagActive | FlagTracking},
	}
	for _, opt := range opts {
		opt(e)
	}
	if sys.activeScope != nil {
		sys.activeScope.record(e)
	}
	return e
}

// Effect creates an effect and runs it once. If the first run fails the
// effect is stopped and the error returned.
func Effect(sys *System, fn EffectFunc, opts ...EffectOption) (*ReactiveEffect, error) {
	e := NewEffect(sys, fn, opts...)

	ok := false
	defer func() {
		if !ok {
			e.Stop()
		}
	}()
	if err := e.Run(); err != nil {
		return nil, err
	}
	ok = true
	return e, nil
}

func (e *ReactiveEffect) notify() bool {
	if e.flags&FlagRunning != 0 && e.flags&FlagAllowRecurse == 0 {
		return false
	}
	s := e.sys
	if e.flags&FlagNoBatch != 0 {
		if err := s.runTrigger(e); err != nil && s.batchErr == nil {
			s.batchErr = err
		}
		return false
	}
	if e.flags&FlagNotified == 0 {
		e.flags |= FlagNotified
		if s.batchTail != nil {
			s.batchTail.nextInBatch = e
		} else {
			s.batchHead = e
		}
		s.batchTail = e
	}
	return false
}

// Run executes the effect body, collecting its dependencies. A stopped
// effect still runs its body, without tracking.
func (e *ReactiveEffect) Run() (err error) {
	if e.flags&FlagActive == 0 {
		return e.fn()
	}

	s := e.sys
	e.flags |= FlagRunning
	prepareDeps(&e.sub)
	prevSub, prevShouldTrack := s.activeSub, s.shouldTrack
	s.activeSub, s.shouldTrack = e, true

	var start time.Time
	if s.instrument != nil {
		start = time.Now()
	}

	defer func() {
		if s.activeSub != e {
			s.warn("active subscriber was not restored correctly", "effect", e.name)
		}
		cleanupDeps(&e.sub)
		s.activeSub, s.shouldTrack = prevSub, prevShouldTrack
		e.flags &^= FlagRunning

		if e.flags&FlagActive == 0 {
			// Stopped during its own run: drop anything read after Stop.
			e.unlinkAll()
		}
		if s.instrument != nil {
			s.instrument.EffectRan(time.Since(start), err)
		}
	}()

	return e.fn()
}

// Stop detaches the effect from every dep. It is terminal; calling it again
// is a no-op.
func (e *ReactiveEffect) Stop() {
	if e.flags&FlagActive == 0 {
		return
	}
	e.unlinkAll()
	if e.onStop != nil {
		e.onStop()
	}
	e.flags &^= FlagActive | FlagTracking
}

func (e *ReactiveEffect) unlinkAll() {
	for link := e.deps; link != nil; link = link.nextDep {
		removeSub(link)
		if link.dep.activeLink == link {
			link.dep.activeLink = link.prevActiveLink
		}
		link.prevActiveLink = nil
	}
	e.deps, e.depsTail = nil, nil
}

// Trigger hands the effect to its scheduler, or re-runs it if any of its
// dependencies changed.
func (e *ReactiveEffect) Trigger() error {
	if e.scheduler != nil {
		return e.scheduler()
	}
	return e.RunIfDirty()
}

func (e *ReactiveEffect) RunIfDirty() error {
	if isDirty(&e.sub) {
		return e.Run()
	}
	return nil
}

// Dirty reports whether a dependency changed since the last run. Computed
// dependencies are refreshed to answer.
func (e *ReactiveEffect) Dirty() bool {
	return isDirty(&e.sub)
}

func (e *ReactiveEffect) Active() bool {
	return e.flags&FlagActive != 0
}
