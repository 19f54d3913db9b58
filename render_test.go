package opendot

import (
	"errors"
	"image"
	"image/color"
	"strings"
	"unicode/utf8"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Render", func() {
	var cfg Config

	BeforeEach(func() {
		cfg = DefaultConfig()
		cfg.Charset = Charset(" #")
	})

	It("renders a white image with the lightest rune", func() {
		g, err := Render(uniformImage(2, 2, color.White), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Lines()).To(Equal([]string{"  ", "  "}))
	})

	It("renders a black pixel with the densest rune", func() {
		g, err := Render(uniformImage(1, 1, color.Black), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(g.String()).To(Equal("#"))
	})

	It("composites transparent pixels onto black", func() {
		g, err := Render(uniformImage(4, 4, color.NRGBA{0xff, 0xff, 0xff, 0}), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(g.String()).To(Equal("####\n####\n####\n####"))
	})

	It("swaps polarity when inverted", func() {
		cfg.Invert = true
		g, err := Render(uniformImage(1, 1, color.Black), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(g.String()).To(Equal(" "))
	})

	It("fills the grid with a single rune charset even when dithering", func() {
		cfg.Charset = Charset("#")
		cfg.Dither = true
		g, err := Render(horizontalGradient(16, 8), cfg)
		Expect(err).NotTo(HaveOccurred())
		for _, c := range g.Cells {
			Expect(c.Char).To(Equal('#'))
		}
	})

	It("produces exactly rows x cols cells", func() {
		cases := []struct {
			w, h, cols int
			scale      float64
		}{
			{w: 64, h: 32, cols: 20, scale: 2},
			{w: 10, h: 100, cols: 40, scale: 4},
			{w: 300, h: 7, cols: 80, scale: 2.5},
			{w: 3, h: 3, cols: 1, scale: 0.5},
		}
		for _, c := range cases {
			cfg.MaxColumns = c.cols
			cfg.VerticalScale = c.scale
			cols, rows, err := GridSize(c.w, c.h, c.cols, c.scale)
			Expect(err).NotTo(HaveOccurred())

			for _, dither := range []bool{false, true} {
				cfg.Dither = dither
				g, err := Render(horizontalGradient(c.w, c.h), cfg)
				Expect(err).NotTo(HaveOccurred())
				Expect(g.Cols).To(Equal(cols))
				Expect(g.Rows).To(Equal(rows))
				Expect(g.Cells).To(HaveLen(rows * cols))
				lines := g.Lines()
				Expect(lines).To(HaveLen(rows))
				for _, line := range lines {
					Expect(utf8.RuneCountInString(line)).To(Equal(cols))
				}
			}
		}
	})

	It("separates rows with line feeds and does not end with one", func() {
		cfg.MaxColumns = 3
		g, err := Render(uniformImage(3, 3, color.Black), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(g.String()).To(Equal("###\n###\n###"))
		Expect(strings.HasSuffix(g.String(), "\n")).To(BeFalse())
	})

	It("is deterministic", func() {
		cfg.Charset = CharsetStandard
		cfg.Dither = true
		cfg.Contrast = 30
		cfg.Brightness = -10
		img := horizontalGradient(50, 20)
		first, err := Render(img, cfg)
		Expect(err).NotTo(HaveOccurred())
		second, err := Render(img, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(second).To(Equal(first))
	})

	It("does not modify the image", func() {
		img := horizontalGradient(20, 10)
		before := append([]uint8(nil), img.Pix...)
		cfg.Dither = true
		_, err := Render(img, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(img.Pix).To(Equal(before))
	})

	It("approximates a gradient better when dithering", func() {
		cfg.MaxColumns = 64
		cfg.Smoothing = false
		img := horizontalGradient(64, 16)

		inkPerQuarter := func(g *Grid) []float64 {
			counts := make([]float64, 4)
			for y := 0; y < g.Rows; y++ {
				for x := 0; x < g.Cols; x++ {
					if g.At(x, y).Char == '#' {
						counts[x*4/g.Cols]++
					}
				}
			}
			for i := range counts {
				counts[i] /= float64(g.Rows * g.Cols / 4)
			}
			return counts
		}
		// Ink is the inverse of the mean brightness of each quarter.
		expected := []float64{0.875, 0.625, 0.375, 0.125}
		totalError := func(ink []float64) float64 {
			var sum float64
			for i := range ink {
				d := ink[i] - expected[i]
				if d < 0 {
					d = -d
				}
				sum += d
			}
			return sum
		}

		plain, err := Render(img, cfg)
		Expect(err).NotTo(HaveOccurred())
		cfg.Dither = true
		dithered, err := Render(img, cfg)
		Expect(err).NotTo(HaveOccurred())

		ink := inkPerQuarter(dithered)
		for i := 1; i < len(ink); i++ {
			Expect(ink[i]).To(BeNumerically("<", ink[i-1]))
		}
		for i := range ink {
			Expect(ink[i]).To(BeNumerically("~", expected[i], 0.1))
		}
		Expect(totalError(ink)).To(BeNumerically("<", totalError(inkPerQuarter(plain))))
	})

	Context("when colored", func() {
		BeforeEach(func() {
			cfg.Colored = true
			cfg.Charset = CharsetStandard
		})

		It("pairs the tone mapped glyph with the raw sampled color", func() {
			cfg.Contrast = 100
			cfg.Brightness = -50
			g, err := Render(uniformImage(2, 2, color.NRGBA{200, 40, 40, 0xff}), cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(g.Colored).To(BeTrue())
			expected := MapValueToChar(Tone(200, 40, 40, 100, -50), cfg.Charset, false)
			for _, c := range g.Cells {
				Expect(c.Char).To(Equal(expected))
				Expect(c.Color).To(Equal(color.RGBA{200, 40, 40, 0xff}))
			}
		})

		It("darkens the color of translucent cells", func() {
			g, err := Render(uniformImage(2, 2, color.NRGBA{0xff, 0xff, 0xff, 0x80}), cfg)
			Expect(err).NotTo(HaveOccurred())
			for _, c := range g.Cells {
				Expect(c.Color).To(Equal(color.RGBA{0x80, 0x80, 0x80, 0xff}))
			}
		})

		It("ignores dithering", func() {
			img := horizontalGradient(40, 20)
			plain, err := Render(img, cfg)
			Expect(err).NotTo(HaveOccurred())
			cfg.Dither = true
			dithered, err := Render(img, cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(dithered).To(Equal(plain))
		})
	})

	Context("with invalid input", func() {
		It("rejects an invalid configuration without output", func() {
			var cerr *InvalidConfigurationError
			for _, mutate := range []func(*Config){
				func(c *Config) { c.Charset = nil },
				func(c *Config) { c.MaxColumns = 0 },
				func(c *Config) { c.VerticalScale = 0 },
				func(c *Config) { c.VerticalScale = -1 },
			} {
				bad := cfg
				mutate(&bad)
				g, err := Render(uniformImage(4, 4, color.White), bad)
				Expect(g).To(BeNil())
				Expect(errors.As(err, &cerr)).To(BeTrue())
			}
		})

		It("rejects images without pixels", func() {
			var ierr *InvalidImageError
			_, err := Render(nil, cfg)
			Expect(errors.As(err, &ierr)).To(BeTrue())
			_, err = Render(image.NewRGBA(image.Rect(0, 0, 5, 0)), cfg)
			Expect(errors.As(err, &ierr)).To(BeTrue())
		})
	})
})
