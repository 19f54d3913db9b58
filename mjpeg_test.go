package opendot

import (
	"bytes"
	"context"
	"image/color"
	"image/jpeg"
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// mjpegStream frames every image like a multipart/x-mixed-replace body.
func mjpegStream(colors ...color.Color) []byte {
	var buf bytes.Buffer
	for _, c := range colors {
		buf.WriteString("--frame\r\nContent-Type: image/jpeg\r\n\r\n")
		Expect(jpeg.Encode(&buf, uniformImage(4, 4, c), nil)).To(Succeed())
		buf.WriteString("\r\n")
	}
	return buf.Bytes()
}

func collect(frames <-chan Frame) []Frame {
	var all []Frame
	for f := range frames {
		all = append(all, f)
	}
	return all
}

var _ = Describe("MJPEGReader", func() {
	It("splits frames and skips the boundaries", func() {
		r := &MJPEGReader{Reader: bytes.NewReader(mjpegStream(color.Black, color.White))}
		frames := collect(r.ReadAll(context.Background()))
		Expect(frames).To(HaveLen(2))
		for _, f := range frames {
			Expect(f.Err).NotTo(HaveOccurred())
			Expect(f.Image.Bounds().Dx()).To(Equal(4))
		}
		y0, _, _, _ := frames[0].Image.At(1, 1).RGBA()
		y1, _, _, _ := frames[1].Image.At(1, 1).RGBA()
		Expect(y0).To(BeNumerically("<", y1))
	})

	It("ends with an error frame on a corrupt image", func() {
		stream := append([]byte("junk\xff\xd8not a jpeg\xff\xd9"), mjpegStream(color.Black)...)
		r := &MJPEGReader{Reader: bytes.NewReader(stream)}
		frames := collect(r.ReadAll(context.Background()))
		Expect(frames).To(HaveLen(1))
		Expect(frames[0].Err).To(HaveOccurred())
	})

	It("closes the channel on an empty stream", func() {
		r := &MJPEGReader{Reader: strings.NewReader("")}
		Expect(collect(r.ReadAll(context.Background()))).To(BeEmpty())
	})
})

var _ = Describe("MJPEGAnimator", func() {
	It("redraws every frame in place", func() {
		cfg, err := NewConfig(WithColumns(4), WithCharset(Charset(" #")))
		Expect(err).NotTo(HaveOccurred())
		var buf bytes.Buffer
		term := &recordingTerminal{}
		enc := NewEncoder(&buf, cfg, WithFormat(FormatText))

		stream := bytes.NewReader(mjpegStream(color.Black, color.Black))
		Expect(NewMJPEGAnimator(enc, term).Animate(context.Background(), stream, 1000)).To(Succeed())
		Expect(buf.String()).To(Equal(strings.Repeat("####\n", 8)))
		Expect(term.resets).To(Equal([]int{0, 4}))
		Expect(term.shown).To(Equal([]bool{false, true}))
	})

	It("rejects a non positive frame rate", func() {
		enc := NewEncoder(&bytes.Buffer{}, DefaultConfig())
		Expect(NewMJPEGAnimator(enc, &recordingTerminal{}).Animate(context.Background(), strings.NewReader(""), 0)).NotTo(Succeed())
	})
})
