package opendot

import (
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// Format selects how an Encoder writes a rendered grid.
type Format int

const (
	FormatText Format = iota
	FormatANSI
	FormatHTML
	FormatPNG
)

var formatNames = [...]string{"text", "ansi", "html", "png"}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// ParseFormat accepts the names returned by Format.String, ignoring case.
func ParseFormat(name string) (Format, error) {
	for i, n := range formatNames {
		if strings.EqualFold(n, name) {
			return Format(i), nil
		}
	}
	return 0, fmt.Errorf("opendot: unknown format %q", name)
}

type EncoderOpt func(enc *Encoder)

// WithFormat sets the output format. The default is FormatText.
func WithFormat(f Format) EncoderOpt {
	return func(enc *Encoder) {
		enc.format = f
	}
}

// WithProfile forces the terminal color profile used by FormatANSI. By
// default it is detected from the environment and the writer.
func WithProfile(p termenv.Profile) EncoderOpt {
	return func(enc *Encoder) {
		enc.profile = p
		enc.profileSet = true
	}
}

// WithRasterOptions configures FormatPNG.
func WithRasterOptions(opts RasterOptions) EncoderOpt {
	return func(enc *Encoder) {
		enc.raster = opts
	}
}

type Encoder struct {
	w          io.Writer
	cfg        Config
	format     Format
	profile    termenv.Profile
	profileSet bool
	raster     RasterOptions
}

// Encode renders img with DefaultConfig and writes it to w as text.
func Encode(w io.Writer, img image.Image) error {
	return NewEncoder(w, DefaultConfig()).Encode(img)
}

func NewEncoder(w io.Writer, cfg Config, opts ...EncoderOpt) *Encoder {
	enc := Encoder{
		w:      w,
		cfg:    cfg,
		format: FormatText,
	}
	for _, opt := range opts {
		opt(&enc)
	}
	if !enc.profileSet {
		enc.profile = termenv.NewOutput(w).EnvColorProfile()
	}
	return &enc
}

func (enc *Encoder) Config() Config {
	return enc.cfg
}

// Encode renders img and writes the grid.
func (enc *Encoder) Encode(img image.Image) error {
	g, err := Render(img, enc.cfg)
	if err != nil {
		return err
	}
	return enc.EncodeGrid(g)
}

// EncodeGrid writes an already rendered grid.
func (enc *Encoder) EncodeGrid(g *Grid) error {
	var err error
	switch enc.format {
	case FormatText:
		err = WriteText(enc.w, g)
	case FormatANSI:
		err = WriteANSI(enc.w, g, enc.profile)
	case FormatHTML:
		err = WriteHTML(enc.w, g)
	case FormatPNG:
		err = WritePNG(enc.w, g, enc.raster)
	default:
		return fmt.Errorf("opendot: unknown format %v", enc.format)
	}
	if err != nil {
		return fmt.Errorf("opendot: writing %v: %w", enc.format, err)
	}
	return nil
}

// encodeFrame writes g so that the cursor ends on the line below the last
// row, which is what cursor resets between animation frames expect.
func (enc *Encoder) encodeFrame(g *Grid) error {
	switch enc.format {
	case FormatANSI:
		return WriteANSI(enc.w, g, enc.profile)
	case FormatText:
		return WriteANSI(enc.w, g, termenv.Ascii)
	}
	return fmt.Errorf("opendot: cannot animate %v output", enc.format)
}
