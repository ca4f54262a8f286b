package domain

import "strings"

const (
	DefaultPlaceholder = "."
	DefaultSeparator   = " "
)

// RenderOptions controls the debug dump. Empty fields fall back to the defaults.
type RenderOptions struct {
	Placeholder string
	Separator   string
}

func (o RenderOptions) normalized() RenderOptions {
	if o.Placeholder == "" {
		o.Placeholder = DefaultPlaceholder
	}
	if o.Separator == "" {
		o.Separator = DefaultSeparator
	}
	return o
}

// Render dumps the declared extent row by row. Every cell is followed by the separator;
// every row ends with a line break and a blank line. Cells outside the extent are not shown.
func (g *Grid) Render(opts RenderOptions) string {
	if g == nil {
		return ""
	}
	opts = opts.normalized()

	var b strings.Builder
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if t, ok := g.cells[Coord{X: x, Y: y}]; ok {
				b.WriteString(t.Value())
			} else {
				b.WriteString(opts.Placeholder)
			}
			b.WriteString(opts.Separator)
		}
		b.WriteString("\n\n")
	}
	return b.String()
}

func (g *Grid) String() string {
	return g.Render(RenderOptions{})
}
