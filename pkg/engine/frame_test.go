package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubRenderable struct{ v int }

func (s stubRenderable) Equal(other Renderable) bool {
	o, ok := other.(stubRenderable)
	return ok && o.v == s.v
}

func TestDiffFramesEmitsSetForChangedSlot(t *testing.T) {
	prev := newFrameBuffers()
	prev.set(0, stubRenderable{1}, nil)

	next := newFrameBuffers()
	next.set(0, stubRenderable{2}, nil)

	patch := diffFrames(prev, next)
	assert.Equal(t, Patch{{Op: DiffSet, Slot: 0, Renderable: stubRenderable{2}}}, patch)
}

func TestDiffFramesSkipsUnchangedSlot(t *testing.T) {
	prev := newFrameBuffers()
	prev.set(0, stubRenderable{1}, nil)

	next := newFrameBuffers()
	next.set(0, stubRenderable{1}, nil)

	patch := diffFrames(prev, next)
	assert.Empty(t, patch, "idempotent render must produce no diffs")
}

func TestDiffFramesEmitsClearForRemovedSlot(t *testing.T) {
	prev := newFrameBuffers()
	prev.set(0, stubRenderable{1}, nil)

	next := newFrameBuffers()

	patch := diffFrames(prev, next)
	assert.Equal(t, Patch{{Op: DiffClear, Slot: 0}}, patch)
}

func TestDiffFramesIgnoresClickHandlerIdentity(t *testing.T) {
	prev := newFrameBuffers()
	prev.set(0, stubRenderable{1}, func(ClickEvent) {})

	next := newFrameBuffers()
	next.set(0, stubRenderable{1}, func(ClickEvent) {})

	patch := diffFrames(prev, next)
	assert.Empty(t, patch, "a new click closure at an unchanged slot must not emit a Set")
}
