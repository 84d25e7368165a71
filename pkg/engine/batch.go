package engine

// batch implements spec.md §4.7 step 4, grounded on the teacher's
// depth-counter/dirty-flag pattern in pkg/vango/batch.go: increment depth,
// run work, decrement in a deferred block so the counter and dirty flag
// are restored even if work panics, and post exactly one re-render if the
// depth returned to zero with a pending request.
func (r *Reconciler) batch(work func()) {
	r.mu.Lock()
	r.batchDepth++
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.batchDepth--
		needsRender := r.batchDepth == 0 && r.dirtyBatch
		if needsRender {
			r.dirtyBatch = false
		}
		r.mu.Unlock()

		if needsRender {
			r.session.scheduler.Run(func() { r.runUnit(r.renderAsync) })
		}
	}()

	work()
}
