package store

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/delaneyj/signalgraph/reactivity"
)

// Set is a reactive set. Contains tracks one member, Len and Values track
// the whole set.
type Set[T comparable] struct {
	sys     *reactivity.System
	members mapset.Set[T]
}

func NewSet[T comparable](sys *reactivity.System, members ...T) *Set[T] {
	return &Set[T]{
		sys:     sys,
		members: mapset.NewThreadUnsafeSet[T](members...),
	}
}

func (s *Set[T]) Contains(v T) bool {
	s.sys.Track(s, reactivity.OpHas, v)
	return s.members.Contains(v)
}

// Add inserts v, notifying readers only when v was not already a member.
func (s *Set[T]) Add(v T) error {
	if !s.members.Add(v) {
		return nil
	}
	return s.sys.Trigger(s, reactivity.OpAdd, v, v, nil)
}

func (s *Set[T]) Remove(v T) error {
	if !s.members.Contains(v) {
		return nil
	}
	s.members.Remove(v)
	return s.sys.Trigger(s, reactivity.OpDelete, v, nil, v)
}

func (s *Set[T]) Len() int {
	s.sys.Track(s, reactivity.OpIterate, reactivity.IterateKey)
	return s.members.Cardinality()
}

// Values returns the members in no particular order.
func (s *Set[T]) Values() []T {
	s.sys.Track(s, reactivity.OpIterate, reactivity.IterateKey)
	return s.members.ToSlice()
}

func (s *Set[T]) Clear() error {
	if s.members.Cardinality() == 0 {
		return nil
	}
	s.members.Clear()
	return s.sys.Trigger(s, reactivity.OpClear, nil, nil, nil)
}

func (s *Set[T]) Release() {
	s.sys.ForgetTarget(s)
}
