package wsrenderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazzababe/gridui/pkg/engine"
)

func TestEncodePatchRejectsNonCellRenderable(t *testing.T) {
	patch := engine.Patch{
		{Op: engine.DiffSet, Slot: 0, Renderable: fakeRenderable{}},
	}

	_, err := encodePatch(patch)
	assert.ErrorIs(t, err, ErrUnencodableRenderable)
}

type fakeRenderable struct{}

func (fakeRenderable) Equal(other engine.Renderable) bool { return false }

func TestEncodePatchEncodesSetAndClear(t *testing.T) {
	clicked := false
	patch := engine.Patch{
		{Op: engine.DiffSet, Slot: 0, Renderable: Cell{Text: "x"}, Click: func(engine.ClickEvent) { clicked = true }},
		{Op: engine.DiffClear, Slot: 1},
	}

	data, err := encodePatch(patch)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	_ = clicked
}

func TestApplyClickDiffsBindsAndUnbinds(t *testing.T) {
	handlers := make(map[int]engine.ClickHandler)
	called := false

	applyClickDiffs(handlers, engine.Patch{
		{Op: engine.DiffSet, Slot: 0, Renderable: Cell{Text: "x"}, Click: func(engine.ClickEvent) { called = true }},
	})
	require.Contains(t, handlers, 0)
	handlers[0](engine.ClickEvent{})
	assert.True(t, called)

	applyClickDiffs(handlers, engine.Patch{
		{Op: engine.DiffSet, Slot: 0, Renderable: Cell{Text: "y"}},
	})
	assert.NotContains(t, handlers, 0, "a Set with no Click must unbind the slot's prior handler")

	applyClickDiffs(handlers, engine.Patch{
		{Op: engine.DiffSet, Slot: 2, Renderable: Cell{Text: "z"}, Click: func(engine.ClickEvent) {}},
	})
	require.Contains(t, handlers, 2)
	applyClickDiffs(handlers, engine.Patch{
		{Op: engine.DiffClear, Slot: 2},
	})
	assert.NotContains(t, handlers, 2)
}

func TestDecodeClickEventRoundTrip(t *testing.T) {
	e := newEncoder()
	e.writeUint32(42)
	e.writeByte(1)

	event, err := decodeClickEvent(e.buf)
	require.NoError(t, err)
	assert.Equal(t, 42, event.Slot)
	assert.Equal(t, 1, event.Button)
}
