package wsrenderer

import "github.com/kazzababe/gridui/pkg/engine"

// Cell is the concrete Renderable this renderer knows how to put on the
// wire: a short label plus a foreground/background color pair, enough to
// paint one grid slot of an inventory-style display (spec.md §1's "grid of
// inventory slots"). Any Renderable reaching Apply that is not a Cell is
// rejected with a RendererFailureError-worthy error, since the wire format
// has nothing else to encode it as.
type Cell struct {
	Text string
	Fg   uint8
	Bg   uint8
}

// Equal implements engine.Renderable.
func (c Cell) Equal(other engine.Renderable) bool {
	o, ok := other.(Cell)
	return ok && o == c
}

var _ engine.Renderable = Cell{}

func encodeCell(e *encoder, c Cell) {
	e.writeString(c.Text)
	e.writeByte(c.Fg)
	e.writeByte(c.Bg)
}

func decodeCell(d *decoder) (Cell, error) {
	text, err := d.readString()
	if err != nil {
		return Cell{}, err
	}
	fg, err := d.readByte()
	if err != nil {
		return Cell{}, err
	}
	bg, err := d.readByte()
	if err != nil {
		return Cell{}, err
	}
	return Cell{Text: text, Fg: fg, Bg: bg}, nil
}
