package domain

import "sort"

// Grid is a sparse board: only occupied cells are stored.
//
// Width and height are the declared extent. They drive rendering only; Place, Get and
// Remove accept any coordinate.
type Grid struct {
	width  int
	height int
	cells  map[Coord]Token
}

func NewGrid(width, height int) *Grid {
	return &Grid{
		width:  width,
		height: height,
		cells:  make(map[Coord]Token),
	}
}

func (g *Grid) Width() int {
	return g.width
}

func (g *Grid) Height() int {
	return g.height
}

// Len is the number of occupied cells.
func (g *Grid) Len() int {
	return len(g.cells)
}

// InBounds reports whether (x, y) lies inside the declared extent.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// Place stores a new token at (x, y), replacing whatever was there.
func (g *Grid) Place(x, y int, symbol string) {
	g.cells[Coord{X: x, Y: y}] = NewToken(symbol)
}

// Get returns the symbol at (x, y); ok is false when the cell is empty.
func (g *Grid) Get(x, y int) (symbol string, ok bool) {
	t, ok := g.cells[Coord{X: x, Y: y}]
	if !ok {
		return "", false
	}
	return t.Value(), true
}

// Remove clears (x, y) and reports whether a token was there. Empty cells are a no-op.
func (g *Grid) Remove(x, y int) bool {
	c := Coord{X: x, Y: y}
	if _, ok := g.cells[c]; !ok {
		return false
	}
	delete(g.cells, c)
	return true
}

// Tokens lists occupied cells in row-major order (y, then x).
func (g *Grid) Tokens() []Placement {
	out := make([]Placement, 0, len(g.cells))
	for c, t := range g.cells {
		out = append(out, Placement{Coord: c, Symbol: t.Value()})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// Clone returns an independent copy, for handing a board across an ownership boundary.
func (g *Grid) Clone() *Grid {
	if g == nil {
		return nil
	}
	out := NewGrid(g.width, g.height)
	for c, t := range g.cells {
		out.cells[c] = t
	}
	return out
}
