package reactivity_test

import (
	"testing"

	"github.com/delaneyj/signalgraph/reactivity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	fields map[string]int
}

func TestKeyedTrackTrigger(t *testing.T) {
	rs := newSystem(t)
	target := &record{fields: map[string]int{"a": 1, "b": 2}}

	runs := 0
	_, err := reactivity.Effect(rs, func() error {
		runs++
		rs.Track(target, reactivity.OpGet, "a")
		return nil
	})
	require.NoError(t, err)
	require.NotNil(t, rs.KeyDep(target, "a"))
	assert.Nil(t, rs.KeyDep(target, "b"))

	require.NoError(t, rs.Trigger(target, reactivity.OpSet, "b", 3, 2))
	assert.Equal(t, 1, runs)

	require.NoError(t, rs.Trigger(target, reactivity.OpSet, "a", 2, 1))
	assert.Equal(t, 2, runs)
	assert.Equal(t, uint64(1), rs.KeyDep(target, "a").Version())
}

func TestKeyedIterationKeys(t *testing.T) {
	rs := newSystem(t)
	target := &record{}

	iterRuns, keyRuns := 0, 0
	_, err := reactivity.Effect(rs, func() error {
		iterRuns++
		rs.Track(target, reactivity.OpIterate, reactivity.IterateKey)
		return nil
	})
	require.NoError(t, err)
	_, err = reactivity.Effect(rs, func() error {
		keyRuns++
		rs.Track(target, reactivity.OpIterate, reactivity.KeysKey)
		return nil
	})
	require.NoError(t, err)

	// a value change matters to iteration but not to the key set
	require.NoError(t, rs.Trigger(target, reactivity.OpSet, "a", 1, 0))
	assert.Equal(t, 2, iterRuns)
	assert.Equal(t, 1, keyRuns)

	require.NoError(t, rs.Trigger(target, reactivity.OpAdd, "b", 1, nil))
	assert.Equal(t, 3, iterRuns)
	assert.Equal(t, 2, keyRuns)

	require.NoError(t, rs.Trigger(target, reactivity.OpDelete, "b", nil, 1))
	assert.Equal(t, 4, iterRuns)
	assert.Equal(t, 3, keyRuns)
}

func TestKeyedClearTriggersEverything(t *testing.T) {
	rs := newSystem(t)
	target := &record{}

	runs := 0
	_, err := reactivity.Effect(rs, func() error {
		runs++
		rs.Track(target, reactivity.OpGet, "a")
		rs.Track(target, reactivity.OpHas, "b")
		rs.Track(target, reactivity.OpIterate, reactivity.KeysKey)
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, rs.Trigger(target, reactivity.OpClear, nil, nil, nil))
	assert.Equal(t, 2, runs)
}

func TestKeyedUntrackedTarget(t *testing.T) {
	rs := newSystem(t)
	target := &record{}

	// reads outside a subscriber record nothing
	rs.Track(target, reactivity.OpGet, "a")
	assert.Nil(t, rs.KeyDep(target, "a"))

	before := rs.GlobalVersion()
	require.NoError(t, rs.Trigger(target, reactivity.OpSet, "a", 1, 0))
	assert.Equal(t, before+1, rs.GlobalVersion())
}

// computeds over keyed reads see writes made through Trigger
func TestKeyedComputed(t *testing.T) {
	rs := newSystem(t)
	target := &record{fields: map[string]int{"a": 1}}
	sum := reactivity.Computed(rs, func(oldValue int) int {
		rs.Track(target, reactivity.OpIterate, reactivity.IterateKey)
		total := 0
		for _, v := range target.fields {
			total += v
		}
		return total
	})

	seen := []int{}
	_, err := reactivity.Effect(rs, func() error {
		seen = append(seen, sum.Value())
		return nil
	})
	require.NoError(t, err)

	target.fields["b"] = 5
	require.NoError(t, rs.Trigger(target, reactivity.OpAdd, "b", 5, nil))
	assert.Equal(t, []int{1, 6}, seen)
}

func TestKeyedForgetTarget(t *testing.T) {
	rs := newSystem(t)
	target := &record{}

	runs := 0
	_, err := reactivity.Effect(rs, func() error {
		runs++
		rs.Track(target, reactivity.OpGet, "a")
		return nil
	})
	require.NoError(t, err)

	rs.ForgetTarget(target)
	assert.Nil(t, rs.KeyDep(target, "a"))
	require.NoError(t, rs.Trigger(target, reactivity.OpSet, "a", 1, 0))
	assert.Equal(t, 1, runs)
}

func TestKeyedTriggerReturnsEffectError(t *testing.T) {
	rs := newSystem(t)
	target := &record{fields: map[string]int{"a": 1}}

	fail := false
	_, err := reactivity.Effect(rs, func() error {
		rs.Track(target, reactivity.OpIterate, reactivity.IterateKey)
		if fail {
			return errBoom
		}
		return nil
	})
	require.NoError(t, err)

	fail = true
	err = rs.Trigger(target, reactivity.OpAdd, "b", 2, nil)
	require.ErrorIs(t, err, errBoom)
}
