package opendot

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

// Resampler scales an image to exactly cols x rows. smooth selects between
// a high quality filter and the resampler's cheap nearest neighbor mode.
type Resampler interface {
	Resample(img image.Image, cols, rows int, smooth bool) *image.NRGBA
}

// ImagingResampler resamples with disintegration/imaging: Lanczos when
// smoothing, nearest neighbor otherwise.
type ImagingResampler struct{}

func (ImagingResampler) Resample(img image.Image, cols, rows int, smooth bool) *image.NRGBA {
	filter := imaging.Lanczos
	if !smooth {
		filter = imaging.NearestNeighbor
	}
	return imaging.Resize(img, cols, rows, filter)
}

func (ImagingResampler) String() string { return "imaging" }

// NFNTResampler resamples with nfnt/resize: Lanczos3 when smoothing,
// nearest neighbor otherwise. When shrinking, nfnt's nearest neighbor
// averages the source pixels a cell covers.
type NFNTResampler struct{}

func (NFNTResampler) Resample(img image.Image, cols, rows int, smooth bool) *image.NRGBA {
	interp := resize.Lanczos3
	if !smooth {
		interp = resize.NearestNeighbor
	}
	// nfnt returns whichever image type matches the source; normalize it.
	return imaging.Clone(resize.Resize(uint(cols), uint(rows), img, interp))
}

func (NFNTResampler) String() string { return "nfnt" }

var resamplers = map[string]Resampler{
	"imaging": ImagingResampler{},
	"nfnt":    NFNTResampler{},
}

// LookupResampler returns the resampler registered under name.
func LookupResampler(name string) (Resampler, bool) {
	rs, ok := resamplers[name]
	return rs, ok
}

// MaxRows bounds the grid height GridSize will produce.
const MaxRows = 1 << 16

// GridSize computes the character grid for an image of imgW x imgH pixels.
// Columns never exceed the image width. The vertical scale divisor of
// verticalScale/2 is kept as is; existing output geometry depends on it.
func GridSize(imgW, imgH, maxColumns int, verticalScale float64) (cols, rows int, err error) {
	if imgW <= 0 || imgH <= 0 {
		return 0, 0, &InvalidImageError{Width: imgW, Height: imgH, Reason: "image has no area"}
	}
	cols = max(1, min(maxColumns, imgW))
	ratio := float64(imgH) / float64(imgW)
	exact := roundHalfUp(float64(cols) * ratio / (verticalScale / 2))
	if !(exact <= MaxRows) {
		return 0, 0, &InvalidConfigurationError{
			Field:  "vertical scale",
			Reason: fmt.Sprintf("%g gives %g rows, more than %d", verticalScale, exact, MaxRows),
		}
	}
	rows = max(1, int(exact))
	return cols, rows, nil
}

// Sample downsamples img to the grid computed by GridSize. The source image
// is never modified.
func Sample(img image.Image, cfg Config) (*image.NRGBA, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return sample(img, cfg)
}

// sample expects cfg to be valid already.
func sample(img image.Image, cfg Config) (*image.NRGBA, error) {
	if img == nil {
		return nil, &InvalidImageError{Reason: "no pixel buffer"}
	}
	bounds := img.Bounds()
	cols, rows, err := GridSize(bounds.Dx(), bounds.Dy(), cfg.MaxColumns, cfg.VerticalScale)
	if err != nil {
		return nil, err
	}
	rs := cfg.Resampler
	if rs == nil {
		rs = ImagingResampler{}
	}
	return rs.Resample(img, cols, rows, cfg.Smoothing), nil
}
