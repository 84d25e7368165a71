package demo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazzababe/gridui/internal/demo"
	"github.com/kazzababe/gridui/internal/testkit"
	"github.com/kazzababe/gridui/pkg/engine"
)

func TestInventoryViewMountsAndClickIncrementsStack(t *testing.T) {
	root := demo.NewDefaultInventory()
	rec := testkit.NewRecorder()
	sched := testkit.NewScheduler()

	_, err := engine.Mount(root, nil, nil, rec, sched, engine.WithColumns(demo.Columns), engine.WithExecutor(testkit.SyncExecutor{}))
	require.NoError(t, err)
	require.True(t, rec.Mounted)
	assert.Equal(t, "inventory", rec.Title)
	assert.Equal(t, demo.Columns, rec.Cols)

	firstPatch := rec.LastPatch()
	require.NotEmpty(t, firstPatch)

	var click engine.ClickHandler
	for _, d := range firstPatch {
		if d.Op == engine.DiffSet {
			if cell, ok := d.Renderable.(demo.ItemCell); ok && cell.Name == "Iron Sword" {
				click = d.Click
			}
		}
	}
	require.NotNil(t, click, "the Iron Sword slot must register a click handler")

	before := rec.PatchCount()
	click(engine.ClickEvent{})
	assert.Greater(t, rec.PatchCount(), before, "clicking a slot must trigger a re-render")
}

func TestLoadoutViewBatchedEquipYieldsOneRender(t *testing.T) {
	root := &demo.LoadoutView{}
	rec := testkit.NewRecorder()
	sched := testkit.NewScheduler()

	_, err := engine.Mount(root, nil, nil, rec, sched, engine.WithColumns(4))
	require.NoError(t, err)
	before := rec.PatchCount()

	var equip engine.ClickHandler
	for _, d := range rec.LastPatch() {
		if d.Op == engine.DiffSet {
			if cell, ok := d.Renderable.(demo.ItemCell); ok && cell.Name == "equip both" {
				equip = d.Click
			}
		}
	}
	require.NotNil(t, equip)

	equip(engine.ClickEvent{})
	assert.Equal(t, before+1, rec.PatchCount(), "ctx.Batch must coalesce both mutations into one render")
}
