package demo

import (
	"log/slog"

	"github.com/kazzababe/gridui/pkg/engine"
	"github.com/kazzababe/gridui/pkg/reactive"
)

// LoadoutView is a second demo root: a single-row hotbar that swaps
// between two equipped items and exposes a batched "equip both" action.
// It exercises keyed child unmount (spec.md §8 scenario 3), unkeyed
// positional identity (scenario 5), and ctx.Batch coalescing (scenario 2).
type LoadoutView struct {
	equipped *reactive.StateCell[string] // "sword" or "bow"
	swapped  *reactive.StateCell[bool]
}

var _ engine.View = (*LoadoutView)(nil)

func (v *LoadoutView) Init(ctx engine.InitContext) {
	ctx.Size(1)
	ctx.Title("loadout")
}

func (v *LoadoutView) Close(ctx engine.CloseContext) {}

func (v *LoadoutView) Render(ctx engine.RenderContext) {
	v.equipped = engine.UseState(ctx, func() string { return "sword" })
	v.swapped = engine.UseState(ctx, func() bool { return false })

	ctx.SetChildXY(0, 0, &equippedSlot{weapon: v.equipped.Get()}, nil)

	left, right := "buff", "debuff"
	if v.swapped.Get() {
		left, right = right, left
	}
	ctx.SetChildXY(1, 0, &effectBadge{label: left}, nil)
	ctx.SetChildXY(2, 0, &effectBadge{label: right}, nil)

	ctx.SetXY(3, 0, ItemCell{Name: "equip both"}, func(engine.ClickEvent) {
		ctx.Batch(func() {
			v.equipped.Set("bow")
			v.swapped.Set(!v.swapped.Get())
		})
	})
}

// equippedSlot is keyed by the weapon name itself: switching weapons is
// therefore a genuine unmount-then-mount of a different logical instance,
// running equippedSlot's effect cleanup (spec.md §8 scenario 3).
type equippedSlot struct {
	weapon string
}

var _ engine.Component = (*equippedSlot)(nil)

func (s *equippedSlot) Key() string        { return s.weapon }
func (s *equippedSlot) Extent() (int, int) { return 1, 1 }

func (s *equippedSlot) Render(ctx engine.RenderContext) {
	weapon := s.weapon
	engine.UseEffect(ctx, func() reactive.Cleanup {
		return func() { slog.Debug("demo: weapon unequipped", "weapon", weapon) }
	}, []any{s.weapon})

	ctx.SetXY(0, 0, ItemCell{Name: s.weapon, Count: 1}, nil)
}

// effectBadge is an unkeyed Component, so its path is the slot it occupies
// (root/slot[1,0]#0 or root/slot[2,0]#0). Flipping v.swapped hands each
// slot the other label, but each badge reuses its slot's state bucket and
// keeps showing the label that slot was first rendered with — the
// bucket-follows-position consequence from spec.md §8 scenario 5.
type effectBadge struct {
	label string
}

var _ engine.Component = (*effectBadge)(nil)

func (effectBadge) Key() string        { return "" }
func (effectBadge) Extent() (int, int) { return 1, 1 }

func (b *effectBadge) Render(ctx engine.RenderContext) {
	label := engine.UseState(ctx, func() string { return b.label })
	ctx.SetXY(0, 0, ItemCell{Name: label.Get()}, nil)
}
