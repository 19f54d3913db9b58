package opendot

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"math"

	"github.com/disintegration/imaging"
	"github.com/golang/freetype"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"
)

const (
	DefaultForeground = "#dfe7f3"
	DefaultBackground = "#0f141a"
)

// RasterOptions controls how a grid is drawn into an image.
type RasterOptions struct {
	// FontSize in pixels. Cells are round(0.6*FontSize) wide and
	// round(FontSize) tall. Zero draws with the 7x13 bitmap face instead.
	FontSize    float64
	Foreground  string // Hex fill for uncolored grids
	Background  string // Hex fill behind the glyphs
	Transparent bool   // Leave the background transparent
}

func (opts RasterOptions) colors() (fg, bg color.Color, err error) {
	fgHex, bgHex := opts.Foreground, opts.Background
	if fgHex == "" {
		fgHex = DefaultForeground
	}
	if bgHex == "" {
		bgHex = DefaultBackground
	}
	fgc, err := colorful.Hex(fgHex)
	if err != nil {
		return nil, nil, fmt.Errorf("opendot: foreground: %w", err)
	}
	bgc, err := colorful.Hex(bgHex)
	if err != nil {
		return nil, nil, fmt.Errorf("opendot: background: %w", err)
	}
	return fgc, bgc, nil
}

// glyphPainter draws single runes with their top left corner at a point.
type glyphPainter interface {
	cell() (w, h int)
	paint(dst draw.Image, r rune, x, y int, src image.Image) error
}

type bitmapPainter struct {
	face *basicfont.Face
}

func (p bitmapPainter) cell() (int, int) {
	return p.face.Advance, p.face.Height
}

func (p bitmapPainter) paint(dst draw.Image, r rune, x, y int, src image.Image) error {
	d := &font.Drawer{
		Dst:  dst,
		Src:  src,
		Face: p.face,
		Dot:  fixed.P(x, y+p.face.Ascent),
	}
	d.DrawString(string(r))
	return nil
}

type truetypePainter struct {
	ctx    *freetype.Context
	w, h   int
	ascent int
}

func newTruetypePainter(dst draw.Image, size float64) (*truetypePainter, error) {
	f, err := freetype.ParseFont(gomono.TTF)
	if err != nil {
		return nil, err
	}
	c := freetype.NewContext()
	c.SetDPI(72)
	c.SetFont(f)
	c.SetFontSize(size)
	c.SetClip(dst.Bounds())
	c.SetDst(dst)
	c.SetHinting(font.HintingFull)
	w, h := cellSize(RasterOptions{FontSize: size})
	return &truetypePainter{
		ctx:    c,
		w:      w,
		h:      h,
		ascent: int(c.PointToFixed(size*0.8) >> 6),
	}, nil
}

func (p *truetypePainter) cell() (int, int) {
	return p.w, p.h
}

func (p *truetypePainter) paint(dst draw.Image, r rune, x, y int, src image.Image) error {
	p.ctx.SetSrc(src)
	_, err := p.ctx.DrawString(string(r), freetype.Pt(x, y+p.ascent))
	return err
}

// cellSize reports the pixel size of one character cell for opts.
func cellSize(opts RasterOptions) (w, h int) {
	if opts.FontSize <= 0 {
		return bitmapPainter{basicfont.Face7x13}.cell()
	}
	return max(1, int(math.Round(opts.FontSize*0.6))), max(1, int(math.Round(opts.FontSize)))
}

// Rasterize draws g into an image with one fixed size cell per character.
// Colored grids paint every glyph in its cell color; plain grids use the
// foreground color.
func Rasterize(g *Grid, opts RasterOptions) (*image.NRGBA, error) {
	fg, bg, err := opts.colors()
	if err != nil {
		return nil, err
	}
	cw, ch := cellSize(opts)
	dst := image.NewNRGBA(image.Rect(0, 0, max(1, g.Cols*cw), max(1, g.Rows*ch)))
	if !opts.Transparent {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	}

	var painter glyphPainter = bitmapPainter{basicfont.Face7x13}
	if opts.FontSize > 0 {
		if painter, err = newTruetypePainter(dst, opts.FontSize); err != nil {
			return nil, fmt.Errorf("opendot: loading font: %w", err)
		}
	}

	fill := image.NewUniform(fg)
	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Cols; x++ {
			c := g.At(x, y)
			if c.Char == ' ' {
				continue
			}
			src := image.Image(fill)
			if g.Colored {
				src = image.NewUniform(c.Color)
			}
			if err := painter.paint(dst, c.Char, x*cw, y*ch, src); err != nil {
				return nil, err
			}
		}
	}
	return dst, nil
}

// WritePNG rasterizes g and encodes it as PNG.
func WritePNG(w io.Writer, g *Grid, opts RasterOptions) error {
	img, err := Rasterize(g, opts)
	if err != nil {
		return err
	}
	return imaging.Encode(w, img, imaging.PNG)
}
