package store_test

import (
	"sort"
	"testing"

	"github.com/delaneyj/signalgraph/pkg/store"
	"github.com/delaneyj/signalgraph/reactivity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetContains(t *testing.T) {
	rs := newSystem()
	s := store.NewSet(rs, "a")

	seen := []bool{}
	_, err := reactivity.Effect(rs, func() error {
		seen = append(seen, s.Contains("b"))
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, s.Add("c"))
	assert.Equal(t, []bool{false}, seen)

	require.NoError(t, s.Add("b"))
	require.NoError(t, s.Add("b"))
	assert.Equal(t, []bool{false, true}, seen)

	require.NoError(t, s.Remove("b"))
	require.NoError(t, s.Remove("b"))
	assert.Equal(t, []bool{false, true, false}, seen)
}

func TestSetValues(t *testing.T) {
	rs := newSystem()
	s := store.NewSet[int](rs)

	var values []int
	size := 0
	_, err := reactivity.Effect(rs, func() error {
		values = s.Values()
		sort.Ints(values)
		size = s.Len()
		return nil
	})
	require.NoError(t, err)
	assert.Empty(t, values)

	require.NoError(t, s.Add(2))
	require.NoError(t, s.Add(1))
	assert.Equal(t, []int{1, 2}, values)
	assert.Equal(t, 2, size)

	require.NoError(t, s.Clear())
	assert.Empty(t, values)
	assert.Equal(t, 0, size)
}

func TestSetRelease(t *testing.T) {
	rs := newSystem()
	s := store.NewSet[string](rs)

	runs := 0
	_, err := reactivity.Effect(rs, func() error {
		runs++
		s.Len()
		return nil
	})
	require.NoError(t, err)

	s.Release()
	require.NoError(t, s.Add("x"))
	assert.Equal(t, 1, runs)
}
