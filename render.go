package opendot

import (
	"image"
	"image/color"
	"strings"
)

// Cell is one character of a rendered grid. Color is the raw sampled color
// and is only meaningful when the grid is colored.
type Cell struct {
	Char  rune
	Color color.RGBA
}

// Grid is a rendered Rows x Cols block of cells in row-major order.
type Grid struct {
	Cols, Rows int
	Colored    bool
	Cells      []Cell
}

func (g *Grid) At(x, y int) Cell {
	return g.Cells[y*g.Cols+x]
}

// Lines returns the characters of each row.
func (g *Grid) Lines() []string {
	lines := make([]string, g.Rows)
	var sb strings.Builder
	for y := 0; y < g.Rows; y++ {
		sb.Reset()
		for _, c := range g.Cells[y*g.Cols : (y+1)*g.Cols] {
			sb.WriteRune(c.Char)
		}
		lines[y] = sb.String()
	}
	return lines
}

// String joins the rows with line feeds. There is no line feed after the
// last row.
func (g *Grid) String() string {
	return strings.Join(g.Lines(), "\n")
}

/*
Render converts img into a character grid. img is sampled down to the grid
size, every cell is tone mapped (luminance, contrast, brightness) and
quantized onto cfg.Charset.

Transparent pixels are composited onto black, so a fully transparent cell
carries the most ink and, when colored, the color black.

When cfg.Dither is set the whole grid is tone mapped first and then error
diffused in raster order. Colored renders are never dithered: every cell
keeps its own quantized glyph and the raw sampled color, not the tone
mapped one. A one rune charset also skips dithering and fills the grid with
that rune.

Render does not modify img and has no state between calls; equal inputs give
equal grids.
*/
func Render(img image.Image, cfg Config) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sampled, err := sample(img, cfg)
	if err != nil {
		return nil, err
	}

	bounds := sampled.Bounds()
	cols, rows := bounds.Dx(), bounds.Dy()
	field := NewField(cols, rows)
	colors := make([]color.RGBA, cols*rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			i := y*sampled.Stride + x*4
			r, g, b := overBlack(sampled.Pix[i], sampled.Pix[i+1], sampled.Pix[i+2], sampled.Pix[i+3])
			colors[y*cols+x] = color.RGBA{R: r, G: g, B: b, A: 0xff}
			field.V[y*cols+x] = Tone(r, g, b, cfg.Contrast, cfg.Brightness)
		}
	}

	values := field.V
	if cfg.Dither && !cfg.Colored {
		if quantized := FloydSteinberg(field, len(cfg.Charset)); quantized != nil {
			values = quantized
		}
	}

	grid := &Grid{
		Cols:    cols,
		Rows:    rows,
		Colored: cfg.Colored,
		Cells:   make([]Cell, cols*rows),
	}
	for i, v := range values {
		grid.Cells[i].Char = MapValueToChar(v, cfg.Charset, cfg.Invert)
		if cfg.Colored {
			grid.Cells[i].Color = colors[i]
		}
	}
	return grid, nil
}

// overBlack composites a non-premultiplied pixel onto an opaque black
// background.
func overBlack(r, g, b, a uint8) (uint8, uint8, uint8) {
	if a == 0xff {
		return r, g, b
	}
	mul := func(v uint8) uint8 {
		return uint8((uint16(v)*uint16(a) + 0x7f) / 0xff)
	}
	return mul(r), mul(g), mul(b)
}
