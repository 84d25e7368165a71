package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazzababe/gridui/internal/testkit"
)

type staticView struct{}

func (staticView) Init(ctx InitContext)   { ctx.Size(1); ctx.Title("static") }
func (staticView) Close(ctx CloseContext) {}
func (staticView) Render(ctx RenderContext) {
	ctx.SetXY(0, 0, testkit.TextCell{Text: "x"}, nil)
}

func TestRenderIsIdempotentWithoutStateChange(t *testing.T) {
	rec := testkit.NewRecorder()
	sched := testkit.NewScheduler()

	session, err := Mount(&staticView{}, nil, nil, rec, sched, WithColumns(1))
	require.NoError(t, err)
	require.Equal(t, 1, rec.PatchCount())

	require.NoError(t, session.recon.render())
	require.Equal(t, 2, rec.PatchCount())
	assert.Empty(t, rec.LastPatch(), "a second render with no input change must produce an empty patch")
}

type boundedChild struct {
	w, h int
	x, y int
}

func (c *boundedChild) Key() string        { return "" }
func (c *boundedChild) Extent() (int, int) { return c.w, c.h }
func (c *boundedChild) Render(ctx RenderContext) {
	ctx.SetXY(c.x, c.y, testkit.TextCell{Text: "child"}, nil)
}

type coordRoot struct {
	child *boundedChild
}

func (r *coordRoot) Init(ctx InitContext)   { ctx.Size(4); ctx.Title("coord") }
func (r *coordRoot) Close(ctx CloseContext) {}
func (r *coordRoot) Render(ctx RenderContext) {
	ctx.SetChildXY(2, 1, r.child, nil)
}

func TestCoordinateMappingTranslatesChildLocalToParentSlot(t *testing.T) {
	root := &coordRoot{child: &boundedChild{w: 3, h: 3, x: 1, y: 1}}
	rec := testkit.NewRecorder()
	sched := testkit.NewScheduler()

	_, err := Mount(root, nil, nil, rec, sched, WithColumns(9))
	require.NoError(t, err)

	// origin (2,1), child-local (1,1) -> absolute (3,2) -> slot 2*9+3 = 21.
	patch := rec.LastPatch()
	require.Len(t, patch, 1)
	assert.Equal(t, 21, patch[0].Slot)
}

func TestCoordinateMappingDropsOutOfBoundsChildWrite(t *testing.T) {
	root := &coordRoot{child: &boundedChild{w: 3, h: 3, x: 5, y: 0}}
	rec := testkit.NewRecorder()
	sched := testkit.NewScheduler()

	_, err := Mount(root, nil, nil, rec, sched, WithColumns(9))
	require.NoError(t, err)

	assert.Empty(t, rec.LastPatch(), "a local write outside the child's declared extent must be dropped")
}

func TestGCCorrectnessEvictsUnvisitedPaths(t *testing.T) {
	keep := true
	root := &unmountRootForGC{show: &keep}
	rec := testkit.NewRecorder()
	sched := testkit.NewScheduler()

	session, err := Mount(root, nil, nil, rec, sched, WithColumns(1))
	require.NoError(t, err)
	_, ok := session.recon.store["root/slot[0,0]#0"]
	require.True(t, ok)

	keep = false
	require.NoError(t, session.recon.render())

	_, ok = session.recon.store["root/slot[0,0]#0"]
	assert.False(t, ok, "a path not visited this render must be evicted from the store")
}

type unmountRootForGC struct {
	show *bool
}

func (r *unmountRootForGC) Init(ctx InitContext)   { ctx.Size(1); ctx.Title("gc") }
func (r *unmountRootForGC) Close(ctx CloseContext) {}
func (r *unmountRootForGC) Render(ctx RenderContext) {
	if *r.show {
		ctx.SetChildXY(0, 0, &boundedChild{w: 1, h: 1, x: 0, y: 0}, nil)
	}
}

type hookOrderFlipRoot struct {
	useRefInstead *bool
}

func (r *hookOrderFlipRoot) Init(ctx InitContext)   { ctx.Size(1); ctx.Title("hook-order") }
func (r *hookOrderFlipRoot) Close(ctx CloseContext) {}
func (r *hookOrderFlipRoot) Render(ctx RenderContext) {
	if *r.useRefInstead {
		UseRef(ctx, func() int { return 0 })
	} else {
		UseState(ctx, func() int { return 0 })
	}
	ctx.SetXY(0, 0, testkit.TextCell{Text: "x"}, nil)
}

func TestHookOrderViolationAbortsRenderAndKeepsPriorFrame(t *testing.T) {
	flip := false
	root := &hookOrderFlipRoot{useRefInstead: &flip}
	rec := testkit.NewRecorder()
	sched := testkit.NewScheduler()

	session, err := Mount(root, nil, nil, rec, sched, WithColumns(1))
	require.NoError(t, err)
	require.Equal(t, 1, rec.PatchCount())
	priorFrame := rec.LastPatch()

	flip = true
	err = session.recon.render()
	require.Error(t, err, "calling UseRef where UseState was called last render must abort the render")
	assert.Equal(t, 1, rec.PatchCount(), "an aborted render must not apply a new patch")
	assert.Equal(t, priorFrame, rec.LastPatch(), "the previously displayed frame must remain in effect")
}

type failOnceRenderer struct {
	fail    bool
	applied int
}

func (r *failOnceRenderer) Mount(viewer Viewer, title string, rows, cols int) (Surface, error) {
	return "surface", nil
}

func (r *failOnceRenderer) Unmount(surface Surface) {}

func (r *failOnceRenderer) Apply(surface Surface, patch Patch) error {
	r.applied++
	if r.fail {
		return errors.New("boom")
	}
	return nil
}

func TestRendererFailurePropagatesWithoutRotatingFrame(t *testing.T) {
	renderer := &failOnceRenderer{}
	sched := testkit.NewScheduler()

	session, err := Mount(&staticView{}, nil, nil, renderer, sched, WithColumns(1))
	require.NoError(t, err)
	priorPrev := session.recon.prev

	renderer.fail = true
	err = session.recon.render()
	require.Error(t, err)

	var rendererErr *RendererFailureError
	require.ErrorAs(t, err, &rendererErr)
	assert.Same(t, priorPrev, session.recon.prev, "frame buffers must not rotate when Renderer.Apply fails")
}
