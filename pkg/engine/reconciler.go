package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kazzababe/gridui/pkg/observability"
	"github.com/kazzababe/gridui/pkg/reactive"
)

// Reconciler drives render passes, owns the path-indexed store, and
// produces patches (spec.md §2 "Reconciler", §4.5).
//
// executing is the "already on the UI thread" flag from SPEC_FULL.md §5:
// true for the dynamic extent of any reconciler-driven unit of work
// (the initial mount render, a scheduled render, or a batch's deferred
// render). An async completion's assignment is dispatched through
// Scheduler.Run without runUnit, so the render it requests is scheduled
// rather than run inline. request_render consults
// it instead of probing goroutine identity, which Go has no portable way
// to do: under this engine's single-threaded-cooperative model (spec.md
// §5), a call arriving while executing is true is necessarily a
// synchronous continuation of that same unit of work.
type Reconciler struct {
	session *Session

	mu      sync.Mutex
	store   map[string]*reactive.Scope
	prev    *frameBuffers
	next    *frameBuffers
	visited map[string]struct{}

	cols, rows int

	rendering atomic.Bool
	executing atomic.Bool

	batchDepth int
	dirtyBatch bool
}

func newReconciler(session *Session, cols int) *Reconciler {
	return &Reconciler{
		session: session,
		store:   make(map[string]*reactive.Scope),
		prev:    newFrameBuffers(),
		cols:    cols,
		rows:    1,
	}
}

// scopeFor returns the Scope for path, creating it on first visit, and
// marks path as visited for the render pass currently in progress. Called
// by newRootContext and SetChildXY/SetChildSlot.
func (r *Reconciler) scopeFor(path string) *reactive.Scope {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.visited[path] = struct{}{}

	sc, ok := r.store[path]
	if !ok {
		sc = reactive.NewScope(path)
		r.store[path] = sc
	}
	return sc
}

// runUnit marks executing true for the duration of fn, establishing (or
// continuing) one reconciler-driven unit of work.
func (r *Reconciler) runUnit(fn func()) {
	r.executing.Store(true)
	defer r.executing.Store(false)
	fn()
}

// requestRender is the on_change callback wired into every StateCell
// (spec.md §4.7 steps 1-3). It may be called from any goroutine.
func (r *Reconciler) requestRender() {
	task := func() {
		r.mu.Lock()
		if r.batchDepth > 0 {
			r.dirtyBatch = true
			r.mu.Unlock()
			return
		}
		r.mu.Unlock()
		r.renderAsync()
	}

	if r.executing.Load() {
		task()
		return
	}
	r.session.scheduler.Run(func() {
		r.runUnit(task)
	})
}

// render is the re-entrancy-guarded public entry point (spec.md §4.5
// "render()"): a nested invocation reaching this while a render is
// already in flight is dropped. Returns the error a failed Renderer.apply
// produced, if any, for callers (Session.Mount) that can propagate it.
func (r *Reconciler) render() error {
	if !r.rendering.CompareAndSwap(false, true) {
		return nil
	}
	defer func() {
		r.rendering.Store(false)
		r.session.finishPendingUnmount()
	}()
	return r.doRender()
}

// renderAsync runs render() from an entry point with no caller to
// propagate a RendererFailureError to (a scheduled task, a batch's
// deferred render); the error is logged instead.
func (r *Reconciler) renderAsync() {
	if err := r.render(); err != nil {
		r.session.logger.Error("engine: render failed", "error", err)
	}
}

// doRender implements spec.md §4.5's seven numbered steps, instrumented
// with one Prometheus observation and one OpenTelemetry span per pass
// (SPEC_FULL.md §4 ambient stack / Domain Stack).
func (r *Reconciler) doRender() (err error) {
	start := time.Now()
	_, span := r.session.tracer.StartRenderSpan(context.Background(), RootPath)

	next := newFrameBuffers()
	visited := make(map[string]struct{})

	r.mu.Lock()
	r.next = next
	r.visited = visited
	r.mu.Unlock()

	var patchLen int
	defer func() {
		if rec := recover(); rec != nil {
			r.session.logger.Error("engine: render aborted by panic", "panic", rec, "path", RootPath)
			err = fmt.Errorf("engine: render aborted: %v", rec)
		}
		if err != nil {
			r.session.metrics.IncRenderErrors()
		}
		r.session.metrics.ObserveRender(time.Since(start), patchLen)
		observability.EndRenderSpan(span, patchLen, len(visited), err)
	}()

	rootCtx := newRootContext(r)
	r.session.root.Render(rootCtx)

	evicted := r.sweep(visited)
	r.session.metrics.AddEvictedPaths(evicted)

	patch := diffFrames(r.prev, next)
	patchLen = len(patch)

	if applyErr := r.session.renderer.Apply(r.session.surface, patch); applyErr != nil {
		return &RendererFailureError{Path: RootPath, Err: applyErr}
	}

	r.prev = next

	r.flushEffects(visited)

	return nil
}

// sweep evicts every store path not visited this pass, running each of
// its effects' final cleanup first (spec.md §4.5 step 4). Returns the
// number of paths evicted.
func (r *Reconciler) sweep(visited map[string]struct{}) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for path, sc := range r.store {
		if _, ok := visited[path]; ok {
			continue
		}
		for _, e := range sc.Effects() {
			e.RunFinalCleanup()
		}
		delete(r.store, path)
		evicted++
	}
	return evicted
}

// flushEffects runs every pending effect body for every path visited this
// pass, after the patch has been applied (spec.md §4.5 step 7, §4.4).
func (r *Reconciler) flushEffects(visited map[string]struct{}) {
	r.mu.Lock()
	paths := make([]string, 0, len(visited))
	for path := range visited {
		paths = append(paths, path)
	}
	r.mu.Unlock()

	for _, path := range paths {
		r.mu.Lock()
		sc, ok := r.store[path]
		r.mu.Unlock()
		if !ok {
			continue
		}
		for _, e := range sc.Effects() {
			e.Flush()
		}
	}
}

// runFinalCleanups runs every effect's final cleanup for every path
// currently in the store, used by unmount (spec.md §4.6).
func (r *Reconciler) runFinalCleanups() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for path, sc := range r.store {
		for _, e := range sc.Effects() {
			e.RunFinalCleanup()
		}
		delete(r.store, path)
	}
}
