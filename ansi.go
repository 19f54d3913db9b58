package opendot

import (
	"bufio"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// WriteANSI writes g for a terminal, ending every row with a line feed.
// Colored grids get a foreground escape per run of equally colored cells,
// degraded to what profile supports; termenv.Ascii drops color entirely.
func WriteANSI(w io.Writer, g *Grid, profile termenv.Profile) error {
	bw := bufio.NewWriter(w)
	var run strings.Builder
	for y := 0; y < g.Rows; y++ {
		if !g.Colored || profile == termenv.Ascii {
			for x := 0; x < g.Cols; x++ {
				bw.WriteRune(g.At(x, y).Char)
			}
			bw.WriteByte('\n')
			continue
		}
		for x := 0; x < g.Cols; {
			hex := hexColor(g.At(x, y).Color)
			run.Reset()
			for ; x < g.Cols && hexColor(g.At(x, y).Color) == hex; x++ {
				run.WriteRune(g.At(x, y).Char)
			}
			bw.WriteString(profile.String(run.String()).Foreground(profile.Color(hex)).String())
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
