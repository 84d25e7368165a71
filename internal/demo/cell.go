// Package demo provides reference View/Component implementations that
// exercise every pkg/engine operation end to end against a concrete
// Renderable: a 9-column inventory grid of item slots, a click-driven
// stack counter, and an asynchronously loaded catalog summary.
package demo

import "github.com/kazzababe/gridui/pkg/engine"

// ItemCell is the Renderable an inventory slot carries: an item name, a
// stack count, and whether the slot is merely a placeholder ("empty").
type ItemCell struct {
	Name  string
	Count int
	Empty bool
}

// Equal implements engine.Renderable.
func (c ItemCell) Equal(other engine.Renderable) bool {
	o, ok := other.(ItemCell)
	return ok && o == c
}

var _ engine.Renderable = ItemCell{}

// EmptySlot is the placeholder cell for an unoccupied inventory slot.
var EmptySlot = ItemCell{Empty: true}
