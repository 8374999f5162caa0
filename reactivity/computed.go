package reactivity

import "time"

// computed is the non-generic core of a ComputedRef: a subscriber that owns
// a Dep.
type computed struct {
	sub
	dep           Dep
	globalVersion uint64

	// evaluate runs the getter and stores the result when it differs from
	// the cached value, or unconditionally when force is set.
	evaluate func(force bool) (changed bool)

	nextInBatch *computed
}

func (c *computed) Dep() *Dep { return &c.dep }

func (c *computed) notify() bool {
	s := c.dep.sys
	c.flags |= FlagDirty
	if s.activeSub == Subscriber(c) {
		s.warn("computed was notified by a write made during its own evaluation", "computed", c.name)
		return false
	}
	if c.flags&FlagNotified != 0 {
		return false
	}
	c.flags |= FlagNotified
	c.nextInBatch = s.batchedComputed
	s.batchedComputed = c
	return true
}

// refresh brings the cached value up to date. It reports false only when the
// computed is already evaluating, which callers treat as dirty.
func (c *computed) refresh() bool {
	if c.flags&FlagRunning != 0 {
		return false
	}
	if c.flags&FlagTracking != 0 && c.flags&FlagDirty == 0 {
		return true
	}
	c.flags &^= FlagDirty

	s := c.dep.sys
	// Nothing was written anywhere since the last refresh.
	if c.dep.version > 0 && c.globalVersion == s.globalVersion {
		return true
	}
	c.globalVersion = s.globalVersion

	c.flags |= FlagRunning
	if c.dep.version > 0 && !isDirty(&c.sub) {
		c.flags &^= FlagRunning
		return true
	}

	var start time.Time
	if s.instrument != nil {
		start = time.Now()
	}

	prevSub, prevShouldTrack := s.activeSub, s.shouldTrack
	s.activeSub, s.shouldTrack = c, true
	prepareDeps(&c.sub)

	changed, completed := false, false
	defer func() {
		if !completed {
			// A failed evaluation must not keep serving the old value as
			// if it were current.
			c.dep.version++
		}
		s.activeSub, s.shouldTrack = prevSub, prevShouldTrack
		cleanupDeps(&c.sub)
		c.flags &^= FlagRunning

		if s.instrument != nil {
			s.instrument.ComputedRefreshed(changed || !completed, time.Since(start))
		}
	}()

	if c.evaluate(c.dep.version == 0) {
		changed = true
		c.dep.version++
	}
	completed = true
	return true
}

// ComputedRef is a lazily evaluated, memoized derived value. It is a
// subscriber of whatever its getter reads and a Dep for whoever reads it.
type ComputedRef[T comparable] struct {
	c      computed
	value  T
	getter func(oldValue T) T
	equals func(a, b T) bool
}

// ComputedOption configures a ComputedRef.
type ComputedOption[T comparable] func(*ComputedRef[T])

// WithEquals replaces the default comparison used to decide whether a
// re-evaluation produced a new value.
func WithEquals[T comparable](equals func(a, b T) bool) ComputedOption[T] {
	return func(r *ComputedRef[T]) {
		r.equals = equals
	}
}

func ComputedName[T comparable](name string) ComputedOption[T] {
	return func(r *ComputedRef[T]) {
		r.c.name = name
		r.c.dep.name = name
	}
}

// Computed creates a computed. The getter receives the previously cached
// value and does not run until the computed is first read.
func Computed[T comparable](sys *System, getter func(oldValue T) T, opts ...ComputedOption[T]) *ComputedRef[T] {
	r := &ComputedRef[T]{
		getter: getter,
		equals: Same[T],
	}
	r.c.flags = FlagDirty
	r.c.dep.sys = sys
	r.c.dep.computed = &r.c
	r.c.evaluate = r.evaluate
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *ComputedRef[T]) evaluate(force bool) bool {
	v := r.getter(r.value)
	if force || !r.equals(r.value, v) {
		r.value = v
		return true
	}
	return false
}

// Value returns the up to date value and tracks the read.
func (r *ComputedRef[T]) Value() T {
	link := r.c.dep.track(DebugInfo{Target: r, Op: OpGet, Key: "value"})
	r.c.refresh()
	if link != nil {
		link.version = int64(r.c.dep.version)
	}
	return r.value
}

// Peek returns the up to date value without tracking the read.
func (r *ComputedRef[T]) Peek() T {
	r.c.refresh()
	return r.value
}

func (r *ComputedRef[T]) Dep() *Dep { return &r.c.dep }

func (r *ComputedRef[T]) Subscriber() Subscriber { return &r.c }

func (r *ComputedRef[T]) Flags() Flags { return r.c.flags }

// Same is the default equality for computeds, signals and store writes: Go
// equality, except that NaN equals NaN so a value stuck at NaN does not
// propagate on every write.
func Same[T comparable](a, b T) bool {
	return a == b || (a != a && b != b)
}
