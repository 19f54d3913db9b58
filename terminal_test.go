package opendot

import (
	"bytes"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// recordingTerminal remembers every cursor call instead of writing escapes.
type recordingTerminal struct {
	resets []int
	shown  []bool
}

func (t *recordingTerminal) ResetCursor(rows int) {
	t.resets = append(t.resets, rows)
}

func (t *recordingTerminal) ShowCursor(show bool) {
	t.shown = append(t.shown, show)
}

var _ = Describe("Xterm", func() {
	var (
		buf  bytes.Buffer
		term *Xterm
	)

	BeforeEach(func() {
		buf.Reset()
		term = &Xterm{Writer: &buf}
	})

	It("moves the cursor up and to the left", func() {
		term.ResetCursor(3)
		Expect(buf.String()).To(Equal("\033[999D\033[3A"))
	})

	It("stays put when nothing was drawn", func() {
		term.ResetCursor(0)
		Expect(buf.Len()).To(BeZero())
	})

	It("hides and shows the cursor", func() {
		term.ShowCursor(false)
		Expect(buf.String()).To(Equal(escHideCursor))
		buf.Reset()
		term.ShowCursor(true)
		Expect(buf.String()).To(Equal(escShowCursor))
	})
})
