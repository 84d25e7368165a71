package engine

import (
	"fmt"

	"github.com/kazzababe/gridui/pkg/reactive"
)

// Optional is the "null/absent initial value" placeholder spec.md §4.2
// describes for use_async_ref/use_async_state: Present is false until the
// supplier completes and posts its result back to the UI thread.
type Optional[T any] struct {
	Present bool
	Value   T
}

// UseState is the generic form of RenderContext.use_state<T> (spec.md
// §4.2). Go cannot express a generic method on an interface, so the hook
// is a package-level function taking the context explicitly, exactly the
// way the teacher's own helpers (pkg/vango/helpers.go) wrap Owner-scoped
// generic allocation as free functions rather than methods.
func UseState[T any](ctx RenderContext, initial func() T) *reactive.StateCell[T] {
	return reactive.UseState(ctx.scope(), initial, ctx.requestRender())
}

// UseRef is the generic form of RenderContext.use_ref<T>.
func UseRef[T any](ctx RenderContext, initial func() T) *reactive.RefCell[T] {
	return reactive.UseRef(ctx.scope(), initial)
}

// UseEffect allocates or reuses the EffectRecord at the current effect
// cursor and stages body to run if deps changed (spec.md §4.4). The
// reconciler flushes every visited scope's effects after the patch for
// this render has been applied.
func UseEffect(ctx RenderContext, body func() reactive.Cleanup, deps []any) {
	reactive.UseEffect(ctx.scope(), body, deps)
}

// UseAsyncState allocates a state cell holding an absent Optional[T],
// submits supplier to the context's Executor exactly once per call site,
// and assigns the result back on the UI thread via Scheduler.Run when it
// completes — which, because the cell is a StateCell, triggers exactly one
// re-render (spec.md §4.2, §8 scenario 6).
func UseAsyncState[T any](ctx RenderContext, supplier func() T) *reactive.StateCell[Optional[T]] {
	cell := reactive.UseState(ctx.scope(), func() Optional[T] { return Optional[T]{} }, ctx.requestRender())
	started := reactive.UseRef(ctx.scope(), func() bool { return false })

	if !started.Get() {
		started.Set(true)
		runAsync(ctx, func() T { return supplier() }, func(v T) {
			cell.Set(Optional[T]{Present: true, Value: v})
		})
	}

	return cell
}

// UseAsyncRef is UseAsyncState's non-reactive counterpart: the completion
// is still marshalled onto the UI thread, but assigning a RefCell never
// triggers a render (spec.md §4.2: "For... ref, it does not").
func UseAsyncRef[T any](ctx RenderContext, supplier func() T) *reactive.RefCell[Optional[T]] {
	cell := reactive.UseRef(ctx.scope(), func() Optional[T] { return Optional[T]{} })
	started := reactive.UseRef(ctx.scope(), func() bool { return false })

	if !started.Get() {
		started.Set(true)
		runAsync(ctx, func() T { return supplier() }, func(v T) {
			cell.Set(Optional[T]{Present: true, Value: v})
		})
	}

	return cell
}

// runAsync submits supplier to ctx's Executor and, on success, marshals
// assign(result) back onto the UI thread through ctx's Scheduler. A
// panicking supplier is logged as a TaskFailureError and never calls
// assign, matching spec.md §7's TaskFailure policy: "leave the async
// ref/state at its placeholder; no render triggered".
func runAsync[T any](ctx RenderContext, supplier func() T, assign func(T)) {
	exec := ctx.Executor()
	sched := ctx.Scheduler()
	logger := ctx.logger()
	path := ctx.scope().Path

	exec.Submit(func() {
		defer func() {
			if r := recover(); r != nil {
				err := &TaskFailureError{Path: path, Err: fmt.Errorf("%v", r)}
				logger.Error("engine: async supplier panicked", "error", err)
			}
		}()

		v := supplier()
		sched.Run(func() { assign(v) })
	})
}
