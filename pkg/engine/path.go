package engine

import "strconv"

// RootPath is the literal path of the root view (spec.md §3).
const RootPath = "root"

// overlayTracker assigns the zero-based overlay counter described in
// spec.md §4.1 step 3: one counter per distinct `base` ("parentPath +
// slot[x,y]"), reset at the start of every render of the parent. A render
// context owns exactly one overlayTracker, freshly allocated when that
// context is constructed for a render pass — which is exactly "reset at
// the start of every parent render" since a parent's context only exists
// for the duration of one render of that parent.
type overlayTracker struct {
	counts map[string]int
}

func newOverlayTracker() *overlayTracker {
	return &overlayTracker{counts: make(map[string]int)}
}

// next returns the next overlay index for base and advances it.
func (t *overlayTracker) next(base string) int {
	idx := t.counts[base]
	t.counts[base]++
	return idx
}

// slotSegment formats the "slot[x,y]" path segment from spec.md §4.1 step 1.
func slotSegment(x, y int) string {
	return "slot[" + strconv.Itoa(x) + "," + strconv.Itoa(y) + "]"
}

// childPath implements spec.md §4.1 steps 2-5. A keyed child's path is
// derived from its stable key alone, independent of the placement
// coordinates it renders at this pass: §4.1 requires that "a component's
// state bucket survives reordering" when a key is given, and a child moved
// from one (x,y) to another is still the same logical instance. An unkeyed
// child's path still embeds the parent-local slot it occupies, since the
// overlay counter — and therefore its identity — is scoped per `slot[x,y]`
// base (spec.md §4.1 step 3, §8 scenario 5).
func childPath(tracker *overlayTracker, parentPath string, x, y int, key string) string {
	if key != "" {
		return parentPath + "/key#" + key
	}

	base := parentPath + "/" + slotSegment(x, y)
	return base + "#" + strconv.Itoa(tracker.next(base))
}
