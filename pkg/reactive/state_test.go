package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUseStateFirstRenderUsesInitial(t *testing.T) {
	sc := NewScope("root")
	sc.StartRender()

	cell := UseState(sc, func() int { return 42 }, func() {})
	assert.Equal(t, 42, cell.Get())
}

func TestUseStateSetIsNoopWhenEqual(t *testing.T) {
	sc := NewScope("root")
	sc.StartRender()

	calls := 0
	cell := UseState(sc, func() int { return 1 }, func() { calls++ })

	cell.Set(1)
	assert.Equal(t, 0, calls, "set to an equal value must not invoke onChange")

	cell.Set(2)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, cell.Get())
}

func TestUseStateSurvivesAcrossRenders(t *testing.T) {
	sc := NewScope("root")

	sc.StartRender()
	cell1 := UseState(sc, func() int { return 0 }, func() {})
	cell1.Set(5)

	sc.StartRender()
	cell2 := UseState(sc, func() int { return 0 }, func() {})

	require.Same(t, cell1, cell2)
	assert.Equal(t, 5, cell2.Get())
}

func TestUseStateRewiresOnChangeEveryRender(t *testing.T) {
	sc := NewScope("root")

	sc.StartRender()
	firstCalled := false
	cell := UseState(sc, func() int { return 0 }, func() { firstCalled = true })

	sc.StartRender()
	secondCalled := false
	cell = UseState(sc, func() int { return 0 }, func() { secondCalled = true })

	cell.Set(1)
	assert.False(t, firstCalled, "stale onChange from an earlier render must not fire")
	assert.True(t, secondCalled, "onChange must be rewired to the latest render's callback")
}

func TestStateCellWithEqualsOverridesComparison(t *testing.T) {
	sc := NewScope("root")
	sc.StartRender()

	calls := 0
	cell := UseState(sc, func() int { return 0 }, func() { calls++ })
	cell.WithEquals(func(a, b int) bool { return true })

	cell.Set(99)
	assert.Equal(t, 0, calls, "custom equals reporting always-equal must suppress onChange")
}
