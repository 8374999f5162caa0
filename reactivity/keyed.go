package reactivity

type iterateKey struct{ name string }

var (
	// IterateKey is tracked by reads that depend on the full contents of a
	// target (values or entries). Set, Add, Delete and Clear trigger it.
	IterateKey any = &iterateKey{"iterate"}
	// KeysKey is tracked by reads that depend only on which keys exist.
	// Add, Delete and Clear trigger it; Set does not.
	KeysKey any = &iterateKey{"keys"}
)

// Track records a read of key on target. Targets are usually pointers to
// host collections; they must be comparable.
func (s *System) Track(target any, op Op, key any) {
	if !s.shouldTrack || s.activeSub == nil {
		return
	}
	deps := s.targets[target]
	if deps == nil {
		deps = map[any]*Dep{}
		s.targets[target] = deps
	}
	dep := deps[key]
	if dep == nil {
		dep = NewDep(s)
		deps[key] = dep
	}
	dep.track(DebugInfo{Target: target, Op: op, Key: key})
}

// Trigger records a write to key on target and notifies the deps affected by
// op. A target nobody ever tracked only bumps the global version.
func (s *System) Trigger(target any, op Op, key any, newValue, oldValue any) error {
	deps := s.targets[target]
	if deps == nil {
		s.globalVersion++
		return nil
	}

	info := DebugInfo{
		Target:   target,
		Op:       op,
		Key:      key,
		NewValue: newValue,
		OldValue: oldValue,
	}

	fire := func(dep *Dep) {
		if dep != nil {
			dep.Bump()
			dep.propagate(info)
		}
	}

	return s.Batch(func() error {
		if op == OpClear {
			for _, dep := range deps {
				fire(dep)
			}
			return nil
		}
		fire(deps[key])
		switch op {
		case OpAdd, OpDelete:
			fire(deps[IterateKey])
			fire(deps[KeysKey])
		case OpSet:
			fire(deps[IterateKey])
		}
		return nil
	})
}

// KeyDep returns the dep tracked for key on target, or nil.
func (s *System) KeyDep(target, key any) *Dep {
	return s.targets[target][key]
}

// ForgetTarget drops every dep recorded for target. Subscribers that still
// hold links to those deps are not notified of later writes.
func (s *System) ForgetTarget(target any) {
	delete(s.targets, target)
}
