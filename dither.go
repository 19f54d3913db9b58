package opendot

// Field is a row-major grid of tone values, one per character cell.
type Field struct {
	Cols, Rows int
	V          []float64
}

// NewField allocates a zeroed cols x rows field.
func NewField(cols, rows int) *Field {
	return &Field{Cols: cols, Rows: rows, V: make([]float64, cols*rows)}
}

func (f *Field) At(x, y int) float64 {
	return f.V[y*f.Cols+x]
}

func (f *Field) add(x, y int, v float64) {
	f.V[y*f.Cols+x] += v
}

type diffusion struct {
	dx, dy int
	weight float64
}

// floydSteinberg only reaches cells that come later in raster order.
var floydSteinberg = [...]diffusion{
	{dx: 1, dy: 0, weight: 7.0 / 16},
	{dx: -1, dy: 1, weight: 3.0 / 16},
	{dx: 0, dy: 1, weight: 5.0 / 16},
	{dx: 1, dy: 1, weight: 1.0 / 16},
}

// FloydSteinberg quantizes f to levels evenly spaced values in raster order,
// pushing each cell's rounding error onto its unvisited neighbors. f is
// updated in place and the quantized values are returned. Error that would
// land outside the grid is dropped.
//
// Each cell reads values already adjusted by earlier cells, so the pass is
// strictly sequential. With fewer than two levels there is nothing to
// quantize between and FloydSteinberg returns nil without touching f.
func FloydSteinberg(f *Field, levels int) []float64 {
	if levels <= 1 {
		return nil
	}
	steps := float64(levels - 1)
	out := make([]float64, len(f.V))
	for y := 0; y < f.Rows; y++ {
		for x := 0; x < f.Cols; x++ {
			old := f.At(x, y)
			quantized := roundHalfUp(old*steps) / steps
			out[y*f.Cols+x] = quantized
			err := old - quantized
			for _, d := range floydSteinberg {
				nx, ny := x+d.dx, y+d.dy
				if nx < 0 || nx >= f.Cols || ny >= f.Rows {
					continue
				}
				f.add(nx, ny, err*d.weight)
			}
		}
	}
	return out
}
