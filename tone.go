package opendot

import "math"

// Luminance returns the perceived brightness of an 8-bit RGB triple in [0,1]
// using the Rec. 709 weights.
func Luminance(r, g, b uint8) float64 {
	return (0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)) / 255
}

// contrastFactor maps contrast in [-100,100] onto a multiplier around mid-grey.
// It is 1 at zero contrast.
func contrastFactor(contrast int) float64 {
	c := float64(contrast)
	return (259 * (c + 255)) / (255 * (259 - c))
}

// ApplyContrast stretches (or flattens) v around 128/255. The result is
// clamped to [0,1] so large factors near contrast=100 saturate instead of
// escaping the range.
func ApplyContrast(v float64, contrast int) float64 {
	f := contrastFactor(contrast)
	return clamp(f*(v*255-128)+128, 0, 255) / 255
}

// ApplyBrightness shifts v by brightness/100 and clamps to [0,1].
func ApplyBrightness(v float64, brightness int) float64 {
	return clamp(v+float64(brightness)/100, 0, 1)
}

// Tone runs a pixel through luminance, then contrast, then brightness.
// The order is fixed: contrast always sees raw luminance.
func Tone(r, g, b uint8, contrast, brightness int) float64 {
	v := Luminance(r, g, b)
	v = ApplyContrast(v, contrast)
	return ApplyBrightness(v, brightness)
}

func clamp(v, min, max float64) float64 {
	return math.Max(min, math.Min(max, v))
}
