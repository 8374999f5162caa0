package reactivity

// Scope collects the effects created while it runs so they can be stopped
// together. Scopes nest: a scope created inside another one's Run is stopped
// with its parent.
type Scope struct {
	sys    *System
	parent *Scope
	active bool

	effects  []*ReactiveEffect
	children []*Scope
	cleanups []func()
}

// NewScope creates a scope, attached to the currently running scope if any.
func NewScope(sys *System) *Scope {
	sc := &Scope{
		sys:    sys,
		parent: sys.activeScope,
		active: true,
	}
	if sc.parent != nil {
		sc.parent.children = append(sc.parent.children, sc)
	}
	return sc
}

func (sc *Scope) Active() bool { return sc.active }

// Run calls fn with the scope active. Running a stopped scope does nothing.
func (sc *Scope) Run(fn func() error) error {
	if !sc.active {
		sc.sys.warn("cannot run an inactive scope")
		return nil
	}
	prev := sc.sys.activeScope
	sc.sys.activeScope = sc
	defer func() {
		sc.sys.activeScope = prev
	}()
	return fn()
}

func (sc *Scope) record(e *ReactiveEffect) {
	if sc.active {
		sc.effects = append(sc.effects, e)
	}
}

// OnDispose registers fn to run when the scope stops.
func (sc *Scope) OnDispose(fn func()) {
	sc.cleanups = append(sc.cleanups, fn)
}

// Stop stops every recorded effect and child scope and runs the dispose
// callbacks. It is idempotent.
func (sc *Scope) Stop() {
	if !sc.active {
		return
	}
	sc.active = false
	for _, e := range sc.effects {
		e.Stop()
	}
	for _, child := range sc.children {
		child.parent = nil
		child.Stop()
	}
	for _, fn := range sc.cleanups {
		fn()
	}
	sc.effects, sc.children, sc.cleanups = nil, nil, nil
	sc.detach()
}

func (sc *Scope) detach() {
	p := sc.parent
	if p == nil {
		return
	}
	sc.parent = nil
	for i, child := range p.children {
		if child == sc {
			p.children = append(p.children[:i], p.children[i+1:]...)
			return
		}
	}
}

// OnScopeDispose registers fn on the scope currently running.
func (s *System) OnScopeDispose(fn func()) {
	if s.activeScope == nil {
		s.warn("OnScopeDispose called with no active scope")
		return
	}
	s.activeScope.OnDispose(fn)
}

// ActiveScope returns the scope currently running, or nil.
func (s *System) ActiveScope() *Scope {
	return s.activeScope
}
