package demo

import (
	"fmt"

	"github.com/kazzababe/gridui/pkg/engine"
)

// Columns is the fixed width of the inventory window named in spec.md §1.
const Columns = 9

// ItemSpec describes one stocked inventory item: its stable slot id, the
// item's display name, and the stack count it starts at.
type ItemSpec struct {
	ID         string
	Name       string
	StartCount int
}

// InventoryView is the demo's root View: a Columns-wide grid of item
// slots, each a keyed Component, plus a status row driven by an async
// fetch. It exercises stable-key placement, click-driven state mutation,
// and use_async_state end to end (spec.md §8).
type InventoryView struct {
	Items []ItemSpec

	rows int
}

var _ engine.View = (*InventoryView)(nil)

// Init implements engine.View.
func (v *InventoryView) Init(ctx engine.InitContext) {
	v.rows = (len(v.Items)+Columns-1)/Columns + 1 // +1 for the status row
	if v.rows < 2 {
		v.rows = 2
	}
	ctx.Size(v.rows)
	ctx.Title("inventory")
}

// Close implements engine.View; the demo has nothing to release.
func (v *InventoryView) Close(ctx engine.CloseContext) {}

// Render implements engine.View.
func (v *InventoryView) Render(ctx engine.RenderContext) {
	for i, item := range v.Items {
		x, y := i%Columns, i/Columns
		ctx.SetChildXY(x, y, &itemSlot{id: item.ID, name: item.Name, start: item.StartCount}, nil)
	}

	statusRow := v.rows - 1
	ctx.SetChildXY(0, statusRow, &catalogStatus{}, nil)
}

// itemSlot is a keyed Component rendering one ItemCell. Clicking a slot
// increments its stack count by one (spec.md §8 scenario 1, generalized
// from a bare counter to an inventory stack).
type itemSlot struct {
	id    string
	name  string
	start int
}

var _ engine.Component = (*itemSlot)(nil)

func (s *itemSlot) Key() string        { return s.id }
func (s *itemSlot) Extent() (int, int) { return 1, 1 }

func (s *itemSlot) Render(ctx engine.RenderContext) {
	count := engine.UseState(ctx, func() int { return s.start })

	ctx.SetXY(0, 0, ItemCell{Name: s.name, Count: count.Get()}, func(engine.ClickEvent) {
		count.Set(count.Get() + 1)
	})
}

// catalogStatus is an unkeyed Component that fetches a catalog summary
// through use_async_state, showing the "loading" placeholder until the
// supplier completes (spec.md §8 scenario 6).
type catalogStatus struct{}

var _ engine.Component = (*catalogStatus)(nil)

func (catalogStatus) Key() string        { return "" }
func (catalogStatus) Extent() (int, int) { return Columns, 1 }

func (catalogStatus) Render(ctx engine.RenderContext) {
	summary := engine.UseAsyncState(ctx, func() string {
		return fetchCatalogSummary()
	})

	val := summary.Get()
	if !val.Present {
		ctx.SetXY(0, 0, ItemCell{Name: "loading catalog..."}, nil)
		return
	}
	ctx.SetXY(0, 0, ItemCell{Name: val.Value}, nil)
}

// fetchCatalogSummary stands in for a remote catalog lookup; a real
// adapter would call out over HTTP/gRPC/etc. on the Executor's goroutine.
func fetchCatalogSummary() string {
	return fmt.Sprintf("catalog ready (%d items)", len(demoItems))
}

var demoItems = []ItemSpec{
	{ID: "sword", Name: "Iron Sword", StartCount: 1},
	{ID: "shield", Name: "Wooden Shield", StartCount: 1},
	{ID: "potion", Name: "Health Potion", StartCount: 5},
}

// NewDefaultInventory returns an InventoryView stocked with a small fixed
// catalog, handy for cmd/gridui and for tests that just need a root View.
func NewDefaultInventory() *InventoryView {
	return &InventoryView{Items: append([]ItemSpec(nil), demoItems...)}
}
