package wsrenderer

import (
	"errors"
	"fmt"

	"github.com/kazzababe/gridui/pkg/engine"
)

// ErrUnencodableRenderable is returned by Apply when a Patch contains a
// Renderable that is not a Cell — this renderer only knows how to put
// Cells on the wire.
var ErrUnencodableRenderable = errors.New("wsrenderer: renderable is not a wsrenderer.Cell")

// encodePatch serializes a patch as:
//
//	uint16 diff count
//	per diff: byte op, uint32 slot
//	  op == Set: Cell, then bool hasClick
//	  op == Clear: nothing further
func encodePatch(patch engine.Patch) ([]byte, error) {
	e := newEncoder()
	e.writeUint16(uint16(len(patch)))

	for _, d := range patch {
		e.writeByte(byte(d.Op))
		e.writeUint32(uint32(d.Slot))

		if d.Op != engine.DiffSet {
			continue
		}

		cell, ok := d.Renderable.(Cell)
		if !ok {
			return nil, fmt.Errorf("%w: slot %d holds %T", ErrUnencodableRenderable, d.Slot, d.Renderable)
		}
		encodeCell(e, cell)
		e.writeBool(d.Click != nil)
	}

	return e.buf, nil
}

// applyClickDiffs updates handlers in place from patch: a Set with a
// non-nil Click (re)binds the slot, a Set with a nil Click or a Clear
// unbinds it. Used by Session.Apply to keep its slot -> handler table in
// sync with the frame it just sent, since a patch only carries the slots
// that changed this pass, not the full live set.
func applyClickDiffs(handlers map[int]engine.ClickHandler, patch engine.Patch) {
	for _, d := range patch {
		switch d.Op {
		case engine.DiffSet:
			if d.Click != nil {
				handlers[d.Slot] = d.Click
			} else {
				delete(handlers, d.Slot)
			}
		case engine.DiffClear:
			delete(handlers, d.Slot)
		}
	}
}

// decodeClickEvent decodes a client-sent click frame payload: uint32 slot,
// byte button.
func decodeClickEvent(payload []byte) (engine.ClickEvent, error) {
	d := newDecoder(payload)
	slot, err := d.readUint32()
	if err != nil {
		return engine.ClickEvent{}, err
	}
	button, err := d.readByte()
	if err != nil {
		return engine.ClickEvent{}, err
	}
	return engine.ClickEvent{Slot: int(slot), Button: int(button)}, nil
}
