package store

import (
	"github.com/delaneyj/signalgraph/reactivity"
)

// Map is a reactive map. Get and Has track a single key, Keys and Len track
// the key set, Range tracks every value.
type Map[K comparable, V comparable] struct {
	sys    *reactivity.System
	values map[K]V
}

func NewMap[K comparable, V comparable](sys *reactivity.System) *Map[K, V] {
	return &Map[K, V]{
		sys:    sys,
		values: map[K]V{},
	}
}

func (m *Map[K, V]) Get(key K) (V, bool) {
	m.sys.Track(m, reactivity.OpGet, key)
	v, ok := m.values[key]
	return v, ok
}

func (m *Map[K, V]) Has(key K) bool {
	m.sys.Track(m, reactivity.OpHas, key)
	_, ok := m.values[key]
	return ok
}

// Peek returns the value for key without tracking the read.
func (m *Map[K, V]) Peek(key K) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Set stores value under key. Storing an equal value is a no-op.
func (m *Map[K, V]) Set(key K, value V) error {
	old, ok := m.values[key]
	if ok && reactivity.Same(old, value) {
		return nil
	}
	m.values[key] = value
	if !ok {
		return m.sys.Trigger(m, reactivity.OpAdd, key, value, nil)
	}
	return m.sys.Trigger(m, reactivity.OpSet, key, value, old)
}

func (m *Map[K, V]) Delete(key K) error {
	old, ok := m.values[key]
	if !ok {
		return nil
	}
	delete(m.values, key)
	return m.sys.Trigger(m, reactivity.OpDelete, key, nil, old)
}

func (m *Map[K, V]) Len() int {
	m.sys.Track(m, reactivity.OpIterate, reactivity.KeysKey)
	return len(m.values)
}

// Keys returns the keys in no particular order.
func (m *Map[K, V]) Keys() []K {
	m.sys.Track(m, reactivity.OpIterate, reactivity.KeysKey)
	keys := make([]K, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	return keys
}

// Range calls fn for every entry until fn returns false. fn must not write
// to the map.
func (m *Map[K, V]) Range(fn func(key K, value V) bool) {
	m.sys.Track(m, reactivity.OpIterate, reactivity.IterateKey)
	for k, v := range m.values {
		if !fn(k, v) {
			return
		}
	}
}

func (m *Map[K, V]) Clear() error {
	if len(m.values) == 0 {
		return nil
	}
	clear(m.values)
	return m.sys.Trigger(m, reactivity.OpClear, nil, nil, nil)
}

// Release drops the deps recorded for this map. Subscribers still linked to
// them stop receiving notifications.
func (m *Map[K, V]) Release() {
	m.sys.ForgetTarget(m)
}
