package reactivity

// SignalRef is a writable reactive cell backed by a single Dep.
type SignalRef[T comparable] struct {
	dep   Dep
	value T
}

func Signal[T comparable](sys *System, initialValue T) *SignalRef[T] {
	return &SignalRef[T]{
		dep:   Dep{sys: sys},
		value: initialValue,
	}
}

// Value returns the current value and tracks the read.
func (s *SignalRef[T]) Value() T {
	s.dep.track(DebugInfo{Target: s, Op: OpGet, Key: "value"})
	return s.value
}

// Peek returns the current value without tracking the read.
func (s *SignalRef[T]) Peek() T {
	return s.value
}

// Set stores v and notifies subscribers. Setting an equal value is a no-op.
func (s *SignalRef[T]) Set(v T) error {
	old := s.value
	if Same(old, v) {
		return nil
	}
	s.value = v
	return s.dep.trigger(DebugInfo{
		Target:   s,
		Op:       OpSet,
		Key:      "value",
		NewValue: v,
		OldValue: old,
	})
}

// Update sets the value to fn applied to the current value.
func (s *SignalRef[T]) Update(fn func(T) T) error {
	return s.Set(fn(s.value))
}

func (s *SignalRef[T]) Dep() *Dep { return &s.dep }

func (s *SignalRef[T]) SetName(name string) { s.dep.name = name }
