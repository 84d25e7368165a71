package engine

import (
	"log/slog"

	"github.com/kazzababe/gridui/pkg/reactive"
)

// renderContextImpl is the single concrete type behind both context
// "flavors" spec.md Design Notes §9 describes: a root context (originX=0,
// originY=0, width/height = the surface's W/H) and a child context
// (translated origin, the component's own declared extent). Rather than a
// chain of child-holds-parent pointers, every instance holds only a
// pointer to the shared Reconciler and its own already-composed absolute
// origin — nested child contexts "compose by translation only" (spec.md
// §4.2) by computing the next absolute origin once, at construction, from
// the parent's absolute origin plus the placement coordinates. This is the
// "index or handle into the session rather than an aliased pointer"
// back-reference the design notes call for, generalized from an index to a
// plain struct pointer since Go's tracing GC has no cyclic-ownership
// hazard to avoid — only the recursive-translation-chain cost, which this
// avoids directly.
type renderContextImpl struct {
	recon *Reconciler

	path    string
	sc      *reactive.Scope
	overlay *overlayTracker

	originX, originY int
	width, height    int

	props any
}

var _ RenderContext = (*renderContextImpl)(nil)

func newRootContext(recon *Reconciler) *renderContextImpl {
	sc := recon.scopeFor(RootPath)
	sc.StartRender()

	return &renderContextImpl{
		recon:   recon,
		path:    RootPath,
		sc:      sc,
		overlay: newOverlayTracker(),
		width:   recon.cols,
		height:  recon.rows,
		props:   recon.session.props,
	}
}

func (c *renderContextImpl) Viewer() Viewer       { return c.recon.session.viewer }
func (c *renderContextImpl) Props() any           { return c.props }
func (c *renderContextImpl) Scheduler() Scheduler { return c.recon.session.scheduler }
func (c *renderContextImpl) Executor() Executor   { return c.recon.session.executor }
func (c *renderContextImpl) OriginX() int         { return c.originX }
func (c *renderContextImpl) OriginY() int         { return c.originY }

func (c *renderContextImpl) scope() *reactive.Scope  { return c.sc }
func (c *renderContextImpl) requestRender() func()   { return c.recon.requestRender }
func (c *renderContextImpl) logger() *slog.Logger    { return c.recon.session.logger }

// SetXY implements spec.md §4.2's coordinate-translation rule: reject
// local writes outside this context's own declared extent, translate to
// the absolute surface origin, then drop silently (logged) if that still
// falls outside the root surface.
func (c *renderContextImpl) SetXY(x, y int, r Renderable, click ClickHandler) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		err := &OutOfBoundsError{Path: c.path, Slot: y*c.width + x, W: c.width, H: c.height}
		c.logger().Debug("engine: out-of-bounds local write dropped", "error", err)
		return
	}

	absX, absY := c.originX+x, c.originY+y
	if absX < 0 || absX >= c.recon.cols || absY < 0 || absY >= c.recon.rows {
		err := &OutOfBoundsError{Path: c.path, Slot: absY*c.recon.cols + absX, W: c.recon.cols, H: c.recon.rows}
		c.logger().Debug("engine: out-of-bounds absolute write dropped", "error", err)
		return
	}

	slot := absY*c.recon.cols + absX
	c.recon.next.set(slot, r, click)
}

// SetSlot maps a linear local slot to local (x,y) using this context's own
// width, then delegates to SetXY (spec.md §4.2: "Linear slot writes map
// lx = slot % w, ly = slot / w before the same translation").
func (c *renderContextImpl) SetSlot(slot int, r Renderable, click ClickHandler) {
	if c.width <= 0 {
		return
	}
	lx := slot % c.width
	ly := slot / c.width
	c.SetXY(lx, ly, r, click)
}

func (c *renderContextImpl) SetChildXY(x, y int, child Component, childProps any) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		err := &OutOfBoundsError{Path: c.path, Slot: y*c.width + x, W: c.width, H: c.height}
		c.logger().Debug("engine: out-of-bounds child placement dropped", "error", err)
		return
	}

	absX, absY := c.originX+x, c.originY+y
	childPathStr := childPath(c.overlay, c.path, x, y, child.Key())

	childScope := c.recon.scopeFor(childPathStr)
	childScope.StartRender()

	w, h := child.Extent()
	childCtx := &renderContextImpl{
		recon:   c.recon,
		path:    childPathStr,
		sc:      childScope,
		overlay: newOverlayTracker(),
		originX: absX,
		originY: absY,
		width:   w,
		height:  h,
		props:   childProps,
	}

	child.Render(childCtx)
}

func (c *renderContextImpl) SetChildSlot(slot int, child Component, childProps any) {
	if c.width <= 0 {
		return
	}
	lx := slot % c.width
	ly := slot / c.width
	c.SetChildXY(lx, ly, child, childProps)
}

// Batch implements spec.md §4.7 step 4 by delegating to the Reconciler,
// which owns the single batch-depth counter and dirty flag shared across
// every context in a render pass.
func (c *renderContextImpl) Batch(work func()) {
	c.recon.batch(work)
}
