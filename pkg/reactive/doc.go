// Package reactive implements the hook-state allocator: the persistent,
// path-indexed storage for state cells, ref cells, and effect records that
// survives across render passes.
//
// A Scope is the per-path bucket described by the "State Store" in the
// engine specification: three ordered sequences (states, refs, effects)
// whose cursors reset to zero at the start of every render of the owning
// component and whose Nth call returns the Nth entry allocated on the first
// render. This mirrors the hook-slot storage in the teacher framework's
// component scope, generalized from a single-shot "setup" allocation to a
// cursor that advances on every render.
package reactive
