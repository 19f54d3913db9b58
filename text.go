package opendot

import "io"

// WriteText writes the plain characters of g, one line per row, without a
// trailing line feed. Colors are dropped.
func WriteText(w io.Writer, g *Grid) error {
	_, err := io.WriteString(w, g.String())
	return err
}
