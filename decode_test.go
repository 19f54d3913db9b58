package opendot

import (
	"bytes"
	"image/color"
	"image/png"
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Decode", func() {
	It("decodes registered formats", func() {
		var buf bytes.Buffer
		Expect(png.Encode(&buf, uniformImage(5, 3, color.White))).To(Succeed())
		img, err := Decode(&buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(img.Bounds().Dx()).To(Equal(5))
		Expect(img.Bounds().Dy()).To(Equal(3))
	})

	It("wraps errors from unknown data", func() {
		_, err := Decode(strings.NewReader("plain text"))
		Expect(err).To(MatchError(ContainSubstring("opendot: decoding image")))
	})
})
