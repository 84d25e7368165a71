package engine

import (
	"log/slog"

	"github.com/kazzababe/gridui/pkg/reactive"
)

// Viewer is the opaque display-viewer object a Session is bound to. The
// core never inspects it; it only threads it through to View/Component
// authors via RenderContext.Viewer() (spec.md §6 "the core does not
// introspect payload", generalized here to the viewer handle itself).
type Viewer any

// Executor runs an async-hook supplier off the UI thread (spec.md §5
// "the backing supplier runs on a supplied Executor"). executor.go ships
// the default bounded worker pool; callers may supply their own.
type Executor interface {
	Submit(func())
}

// View is the root author contract (spec.md §6 "View contract").
type View interface {
	// Init is a one-shot configuration call; it may call Size/Title on
	// the supplied InitContext, each exactly once (repeats update the
	// value; calls reaching outside Init are no-ops per spec.md §7
	// DoubleInit).
	Init(ctx InitContext)
	// Render is a pure function of state and props: no side effects
	// outside hook calls and RenderContext writes. May run many times.
	Render(ctx RenderContext)
	// Close is the teardown hook invoked by unmount.
	Close(ctx CloseContext)
}

// Component is the nestable author contract (GLOSSARY "Component"): a
// child placed into a parent's RenderContext via SetChildSlot/SetChildXY.
type Component interface {
	// Key is the component's stable key, or "" if it relies on the
	// overlay counter (spec.md §4.1).
	Key() string
	// Extent is the component's declared (width, height) in its own
	// local coordinate space.
	Extent() (width, height int)
	Render(ctx RenderContext)
}

// InitContext is the capability surface available inside View.Init.
type InitContext interface {
	// Size sets the root surface's row count. Calling it more than once
	// updates the value; calling it outside Init is a no-op (ErrDoubleInit,
	// logged, never returned — spec.md §7 DoubleInit policy is "silently
	// ignore").
	Size(rows int)
	Title(title string)
}

// CloseContext is the capability surface available inside View.Close.
type CloseContext interface {
	Viewer() Viewer
	Props() any
}

// RenderContext is the capability set from spec.md Design Notes §9:
// {viewer, scheduler, props, hooks, set_at_slot, set_at_xy, set_child,
// batch, origin}. One concrete type serves both root and child contexts:
// each holds its already-composed absolute origin and writes translated
// slots straight into the shared frame buffers.
//
// Hook operations (use_state, use_ref, use_effect, use_async_*) are
// package-level generic functions rather than interface methods, since Go
// does not permit a generic method in an interface; they consult the
// unexported scope()/requestRender() accessors below, which only this
// package's RenderContext implementation can satisfy.
type RenderContext interface {
	Viewer() Viewer
	Props() any
	Scheduler() Scheduler
	Executor() Executor

	// OriginX/OriginY report this context's absolute origin on the root
	// surface (spec.md §4.2 origin_x()/origin_y()).
	OriginX() int
	OriginY() int

	// SetSlot/SetXY record a renderable (and optional click handler) at a
	// linear slot or local (x,y) coordinate, respectively.
	SetSlot(slot int, r Renderable, click ClickHandler)
	SetXY(x, y int, r Renderable, click ClickHandler)

	// SetChildSlot/SetChildXY descend into a child component: push its
	// path, reset its cursors, invoke Render with a freshly translated
	// child context, then pop — even if Render panics.
	SetChildSlot(slot int, child Component, childProps any)
	SetChildXY(x, y int, child Component, childProps any)

	// Batch coalesces any re-renders requested by work into at most one.
	Batch(work func())

	scope() *reactive.Scope
	requestRender() func()
	logger() *slog.Logger
}
