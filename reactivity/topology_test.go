package reactivity_test

import (
	"fmt"
	"testing"

	"github.com/delaneyj/signalgraph/reactivity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopologyDropAbaUpdates(t *testing.T) {
	rs := newSystem(t)

	//     A
	//   / |
	//  B  | <- Looks like a flag doesn't it? :D
	//   \ |
	//     C
	//     |
	//     D
	a := reactivity.Signal(rs, 2)
	b := reactivity.Computed(rs, func(oldValue int) int {
		return a.Value() - 1
	})
	c := reactivity.Computed(rs, func(oldValue int) int {
		return a.Value() + b.Value()
	})
	callCount := 0
	d := reactivity.Computed(rs, func(oldValue string) string {
		callCount++
		return fmt.Sprintf("d: %d", c.Value())
	})

	assert.Equal(t, "d: 3", d.Value())
	assert.Equal(t, 1, callCount)

	require.NoError(t, a.Set(4))
	assert.Equal(t, "d: 7", d.Value())
	assert.Equal(t, 2, callCount)
}

func TestShouldOnlyUpdateEverySignalOnceDiamond(t *testing.T) {
	rs := newSystem(t)

	// In this scenario "D" should only update once when "A" receives
	// an update. This is sometimes referred to as the "diamond" scenario.
	//     A
	//   /   \
	//  B     C
	//   \   /
	//     D
	a := reactivity.Signal(rs, "a")
	b := reactivity.Computed(rs, func(oldValue string) string {
		return a.Value()
	})
	c := reactivity.Computed(rs, func(oldValue string) string {
		return a.Value()
	})

	callCount := 0
	d := reactivity.Computed(rs, func(oldValue string) string {
		callCount++
		return b.Value() + " " + c.Value()
	})

	assert.Equal(t, "a a", d.Value())
	assert.Equal(t, 1, callCount)
	callCount = 0

	require.NoError(t, a.Set("aa"))
	assert.Equal(t, "aa aa", d.Value())
	assert.Equal(t, 1, callCount)
}

// same diamond, observed by an effect so the push path is exercised
func TestShouldOnlyRunEffectOnceDiamond(t *testing.T) {
	rs := newSystem(t)

	a := reactivity.Signal(rs, "a")
	b := reactivity.Computed(rs, func(oldValue string) string {
		return a.Value()
	})
	c := reactivity.Computed(rs, func(oldValue string) string {
		return a.Value()
	})

	runs := []string{}
	_, err := reactivity.Effect(rs, func() error {
		runs = append(runs, b.Value()+" "+c.Value())
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, a.Set("aa"))
	assert.Equal(t, []string{"a a", "aa aa"}, runs)
}

func TestShouldOnlyUpdateEverySignalOnceDiamondTail(t *testing.T) {
	rs := newSystem(t)

	// "E" will be likely updated twice if our mark+sweep logic is buggy.
	//     A
	//   /   \
	//  B     C
	//   \   /
	//     D
	//     |
	//     E
	a := reactivity.Signal(rs, "a")
	b := reactivity.Computed(rs, func(oldValue string) string {
		return a.Value()
	})
	c := reactivity.Computed(rs, func(oldValue string) string {
		return a.Value()
	})
	d := reactivity.Computed(rs, func(oldValue string) string {
		return b.Value() + " " + c.Value()
	})

	eCallCount := 0
	e := reactivity.Computed(rs, func(oldValue string) string {
		eCallCount++
		return d.Value()
	})

	assert.Equal(t, "a a", e.Value())
	assert.Equal(t, 1, eCallCount)

	require.NoError(t, a.Set("aa"))
	assert.Equal(t, "aa aa", e.Value())
	assert.Equal(t, 2, eCallCount)
}

func TestBailOutIfResultIsTheSame(t *testing.T) {
	rs := newSystem(t)

	// Bail out if value of "B" never changes
	// A->B->C
	a := reactivity.Signal(rs, "a")
	b := reactivity.Computed(rs, func(oldValue string) string {
		a.Value()
		return "foo"
	})

	callCount := 0
	c := reactivity.Computed(rs, func(oldValue string) string {
		callCount++
		return b.Value()
	})

	assert.Equal(t, "foo", c.Value())
	assert.Equal(t, 1, callCount)

	require.NoError(t, a.Set("aa"))
	assert.Equal(t, "foo", c.Value())
	assert.Equal(t, 1, callCount)
}

func TestShouldOnlyUpdateEverySignalOnceJaggedDiamondTails(t *testing.T) {
	rs := newSystem(t)

	// "F" and "G" will be likely updated twice if our mark+sweep logic is buggy.
	//     A
	//   /   \
	//  B     C
	//  |     |
	//  |     D
	//   \   /
	//     E
	//   /   \
	//  F     G
	a := reactivity.Signal(rs, "a")
	b := reactivity.Computed(rs, func(oldValue string) string {
		return a.Value()
	})
	c := reactivity.Computed(rs, func(oldValue string) string {
		return a.Value()
	})
	d := reactivity.Computed(rs, func(oldValue string) string {
		return c.Value()
	})

	// tick orders evaluations without relying on clock resolution
	tick := 0
	eCallCount, eTick := 0, 0
	e := reactivity.Computed(rs, func(oldValue string) string {
		bV, dV := b.Value(), d.Value()
		eV := bV + " " + dV
		eCallCount++
		tick++
		eTick = tick
		return eV
	})

	fCallCount, fTick := 0, 0
	f := reactivity.Computed(rs, func(oldValue string) string {
		ev := e.Value()
		fCallCount++
		tick++
		fTick = tick
		return ev
	})

	gCallCount, gTick := 0, 0
	g := reactivity.Computed(rs, func(oldValue string) string {
		ev := e.Value()
		gCallCount++
		tick++
		gTick = tick
		return ev
	})

	require.Equal(t, "a a", f.Value())
	require.Equal(t, 1, fCallCount)
	require.Equal(t, "a a", g.Value())
	require.Equal(t, 1, gCallCount)
	eCallCount, fCallCount, gCallCount = 0, 0, 0

	require.NoError(t, a.Set("b"))
	require.Equal(t, "b b", e.Value())
	require.Equal(t, 1, eCallCount)
	require.Equal(t, "b b", f.Value())
	require.Equal(t, 1, fCallCount)
	require.Equal(t, "b b", g.Value())
	require.Equal(t, 1, gCallCount)
	eCallCount, fCallCount, gCallCount = 0, 0, 0

	require.NoError(t, a.Set("c"))
	require.Equal(t, "c c", e.Value())
	require.Equal(t, 1, eCallCount)
	require.Equal(t, "c c", f.Value())
	require.Equal(t, 1, fCallCount)
	require.Equal(t, "c c", g.Value())
	require.Equal(t, 1, gCallCount)

	// top to bottom
	assert.Less(t, eTick, fTick)
	// left to right
	assert.Less(t, fTick, gTick)
}

func TestShouldOnlySubscribeToSignalsListenedTo(t *testing.T) {
	rs := newSystem(t)

	//    *A
	//   /   \
	// *B     C <- we don't listen to C
	a := reactivity.Signal(rs, "a")
	b := reactivity.Computed(rs, func(oldValue string) string {
		return a.Value()
	})
	callCount := 0
	reactivity.Computed(rs, func(oldValue string) string {
		callCount++
		return a.Value()
	})

	assert.Equal(t, "a", b.Value())
	assert.Equal(t, 0, callCount)

	require.NoError(t, a.Set("aa"))
	assert.Equal(t, "aa", b.Value())
	assert.Equal(t, 0, callCount)
}

func TestShouldOnlySubscribeToSignalsListenedToII(t *testing.T) {
	rs := newSystem(t)

	// Here both "B" and "C" are active in the beginning, but
	// "B" becomes inactive later. At that point it should
	// not receive any updates anymore.
	//    *A
	//   /   \
	// *B     D <- we don't listen to C
	//  |
	// *C
	a := reactivity.Signal(rs, "a")
	bCallCount := 0
	b := reactivity.Computed(rs, func(oldValue string) string {
		bCallCount++
		return a.Value()
	})
	cCallCount := 0
	c := reactivity.Computed(rs, func(oldValue string) string {
		cCallCount++
		return b.Value()
	})
	d := reactivity.Computed(rs, func(oldValue string) string {
		return a.Value()
	})

	result := ""
	e, err := reactivity.Effect(rs, func() error {
		result = c.Value()
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, "a", result)
	assert.Equal(t, "a", d.Value())

	bCallCount, cCallCount = 0, 0
	e.Stop()
	assert.Equal(t, 0, a.Dep().SubscriberCount())

	require.NoError(t, a.Set("aa"))
	assert.Equal(t, 0, bCallCount)
	assert.Equal(t, 0, cCallCount)
	assert.Equal(t, "aa", d.Value())
}

func TestShouldEnsureSubsUpdate(t *testing.T) {
	// In this scenario "C" always returns the same value. When "A"
	// changes, "B" will update, then "C" at which point its update
	// to "D" will be unmarked. But "D" must still update because
	// "B" marked it. If "D" isn't updated, then we have a bug.
	//     A
	//   /   \
	//  B     *C <- returns same value every time
	//   \   /
	//     D
	rs := newSystem(t)
	a := reactivity.Signal(rs, "a")
	b := reactivity.Computed(rs, func(oldValue string) string {
		return a.Value()
	})
	c := reactivity.Computed(rs, func(oldValue string) string {
		a.Value()
		return "c"
	})
	dCallCount := 0
	d := reactivity.Computed(rs, func(oldValue string) string {
		dCallCount++
		return b.Value() + " " + c.Value()
	})

	assert.Equal(t, "a c", d.Value())
	assert.Equal(t, 1, dCallCount)

	require.NoError(t, a.Set("aa"))
	assert.Equal(t, "aa c", d.Value())
	assert.Equal(t, 2, dCallCount)
}

func TestShouldEnsureSubsUpdateEvenIfTwoDepsUnmarkIt(t *testing.T) {
	// In this scenario both "C" and "D" always return the same
	// value. But "E" must still update because "A" marked it.
	// If "E" isn't updated, then we have a bug.
	//     A
	//   / | \
	//  B *C *D
	//   \ | /
	//     E
	rs := newSystem(t)
	a := reactivity.Signal(rs, "a")
	b := reactivity.Computed(rs, func(oldValue string) string {
		return a.Value()
	})
	c := reactivity.Computed(rs, func(oldValue string) string {
		a.Value()
		return "c"
	})
	d := reactivity.Computed(rs, func(oldValue string) string {
		a.Value()
		return "d"
	})
	eCallCount := 0
	e := reactivity.Computed(rs, func(oldValue string) string {
		eCallCount++
		return b.Value() + " " + c.Value() + " " + d.Value()
	})

	assert.Equal(t, "a c d", e.Value())
	assert.Equal(t, 1, eCallCount)

	require.NoError(t, a.Set("aa"))
	assert.Equal(t, "aa c d", e.Value())
	assert.Equal(t, 2, eCallCount)
}

func TestShouldEnsureSubsUpdateEvenIfAllDepsUnmarkIt(t *testing.T) {
	// In this scenario "B" and "C" always return the same value. When "A"
	// changes, "D" should not update.
	//     A
	//   /   \
	// *B     *C
	//   \   /
	//     D
	rs := newSystem(t)
	a := reactivity.Signal(rs, "a")
	b := reactivity.Computed(rs, func(oldValue string) string {
		a.Value()
		return "b"
	})
	c := reactivity.Computed(rs, func(oldValue string) string {
		a.Value()
		return "c"
	})
	dCallCount := 0
	d := reactivity.Computed(rs, func(oldValue string) string {
		dCallCount++
		return b.Value() + " " + c.Value()
	})

	assert.Equal(t, "b c", d.Value())
	assert.Equal(t, 1, dCallCount)
	dCallCount = 0

	require.NoError(t, a.Set("aa"))
	assert.Equal(t, "b c", d.Value())
	assert.Equal(t, 0, dCallCount)
}

func TestShouldKeepGraphConsistentOnActivationErrors(t *testing.T) {
	rs := newSystem(t)

	a := reactivity.Signal(rs, 0)
	b := reactivity.Computed(rs, func(oldValue int) int {
		panic("fail")
	})

	assert.Panics(t, func() {
		b.Value()
	})

	require.NoError(t, a.Set(1))
	assert.Equal(t, 1, a.Value())
	assert.Nil(t, rs.ActiveSubscriber())
}

func TestShouldKeepGraphConsistentOnComputedErrors(t *testing.T) {
	rs := newSystem(t)

	a := reactivity.Signal(rs, 0)
	b := reactivity.Computed(rs, func(oldValue int) int {
		panic("fail")
	})
	c := reactivity.Computed(rs, func(oldValue int) int {
		return a.Value()
	})

	assert.Panics(t, func() {
		b.Value()
	})

	require.NoError(t, a.Set(1))
	assert.Equal(t, 1, c.Value())
}
