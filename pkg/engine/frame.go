package engine

// frameBuffers holds the two slot->value mappings built during one render
// pass (spec.md §3 "Frame buffers").
type frameBuffers struct {
	renderables map[int]Renderable
	clicks      map[int]ClickHandler
}

func newFrameBuffers() *frameBuffers {
	return &frameBuffers{
		renderables: make(map[int]Renderable),
		clicks:      make(map[int]ClickHandler),
	}
}

func (f *frameBuffers) set(slot int, r Renderable, click ClickHandler) {
	f.renderables[slot] = r
	if click != nil {
		f.clicks[slot] = click
	} else {
		delete(f.clicks, slot)
	}
}

// diffFrames computes the minimal Patch transforming prev into next,
// following spec.md §4.5 step 5 exactly: a Set is emitted for a slot iff
// its renderable changed (structural equality via Renderable.Equal) and a
// Clear is emitted for any slot present in prev but absent from next.
// Click-handler identity is deliberately excluded from the diff key per
// spec.md §4.5 ("bandwidth/complexity trade-off", discussed in §9) — this
// mirrors the teacher's vdom.Diff, generalized from a tree walk to a flat
// slot-map comparison since this engine's frame buffers are already
// resolved to absolute slots by the time diffing happens.
func diffFrames(prev, next *frameBuffers) Patch {
	var patch Patch

	for slot, nr := range next.renderables {
		pr, existed := prev.renderables[slot]
		if !existed || !pr.Equal(nr) {
			patch = append(patch, Diff{
				Op:         DiffSet,
				Slot:       slot,
				Renderable: nr,
				Click:      next.clicks[slot],
			})
		}
	}

	for slot := range prev.renderables {
		if _, stillPresent := next.renderables[slot]; !stillPresent {
			patch = append(patch, Diff{Op: DiffClear, Slot: slot})
		}
	}

	return patch
}
