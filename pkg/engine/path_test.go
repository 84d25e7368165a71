package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChildPathWithStableKey(t *testing.T) {
	tracker := newOverlayTracker()
	path := childPath(tracker, "root", 2, 3, "a")
	assert.Equal(t, "root/key#a", path)
}

func TestChildPathWithStableKeyIsCoordinateIndependent(t *testing.T) {
	tracker := newOverlayTracker()
	before := childPath(tracker, "root", 0, 0, "a")
	after := childPath(tracker, "root", 1, 0, "a")
	assert.Equal(t, before, after, "a stable key's path must not change when its placement coordinates do")
}

func TestChildPathOverlayCounterIncrementsPerBase(t *testing.T) {
	tracker := newOverlayTracker()

	first := childPath(tracker, "root", 0, 0, "")
	second := childPath(tracker, "root", 0, 0, "")
	third := childPath(tracker, "root", 1, 0, "")

	assert.Equal(t, "root/slot[0,0]#0", first)
	assert.Equal(t, "root/slot[0,0]#1", second)
	assert.Equal(t, "root/slot[1,0]#0", third, "a distinct base must start its own overlay count at 0")
}

func TestOverlayTrackerIsFreshPerParentRender(t *testing.T) {
	a := newOverlayTracker()
	assert.Equal(t, 0, a.next("root/slot[0,0]"))

	b := newOverlayTracker()
	assert.Equal(t, 0, b.next("root/slot[0,0]"), "a new tracker must not see counts from a, simulating reset at the start of every parent render")
}
