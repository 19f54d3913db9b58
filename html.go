package opendot

import (
	"bufio"
	"html"
	"image/color"
	"io"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// hexColor formats c as #rrggbb, ignoring alpha.
func hexColor(c color.RGBA) string {
	c.A = 0xff
	col, _ := colorful.MakeColor(c)
	return col.Hex()
}

// WriteHTML writes g as an HTML fragment meant for a <pre> element. Colored
// grids wrap every character in a span carrying its color and end every row
// with a line feed. Plain grids are escaped text laid out like WriteText.
func WriteHTML(w io.Writer, g *Grid) error {
	if !g.Colored {
		_, err := io.WriteString(w, html.EscapeString(g.String()))
		return err
	}
	bw := bufio.NewWriter(w)
	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Cols; x++ {
			c := g.At(x, y)
			bw.WriteString(`<span style="color:`)
			bw.WriteString(hexColor(c.Color))
			bw.WriteString(`">`)
			bw.WriteString(html.EscapeString(string(c.Char)))
			bw.WriteString(`</span>`)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
