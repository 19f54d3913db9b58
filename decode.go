package opendot

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decode reads a gif, jpeg, png, bmp, tiff or webp image, applying any EXIF
// orientation. Images without area are rejected with an InvalidImageError.
func Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("opendot: decoding image: %w", err)
	}
	if b := img.Bounds(); b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, &InvalidImageError{Width: b.Dx(), Height: b.Dy(), Reason: "image has no area"}
	}
	return img, nil
}
