package opendot

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"time"
)

// Frame is one decoded image of an MJPEG stream, or the error that ended it.
type Frame struct {
	Image image.Image
	Err   error
}

// MJPEGReader splits a motion JPEG stream into frames. Bytes outside a
// SOI (FFD8) ... EOI (FFD9) pair, such as multipart boundaries, are skipped.
type MJPEGReader struct {
	Reader io.Reader
}

// ReadAll decodes frames in a goroutine until the stream ends, an error
// occurs or ctx is done. The channel is closed afterwards. A read or decode
// error is delivered as the last frame; io.EOF is not an error.
func (mjpeg *MJPEGReader) ReadAll(ctx context.Context) <-chan Frame {
	frames := make(chan Frame)
	go func() {
		defer close(frames)

		send := func(f Frame) bool {
			select {
			case frames <- f:
				return true
			case <-ctx.Done():
				return false
			}
		}

		r := bufio.NewReader(mjpeg.Reader)
		var buf bytes.Buffer
		var prev byte
		inFrame := false
		for {
			c, err := r.ReadByte()
			if err != nil {
				if err != io.EOF {
					send(Frame{Err: err})
				}
				return
			}

			switch {
			case !inFrame && prev == 0xff && c == 0xd8:
				inFrame = true
				buf.Reset()
				buf.Write([]byte{0xff, 0xd8})
			case inFrame:
				buf.WriteByte(c)
				if prev == 0xff && c == 0xd9 {
					inFrame = false
					img, err := jpeg.Decode(bytes.NewReader(buf.Bytes()))
					if err != nil {
						send(Frame{Err: fmt.Errorf("opendot: decoding mjpeg frame: %w", err)})
						return
					}
					if !send(Frame{Image: img}) {
						return
					}
					c = 0
				}
			}
			prev = c
		}
	}()
	return frames
}

// MJPEGAnimator redraws every frame of an MJPEG stream in place.
type MJPEGAnimator struct {
	enc *Encoder
	t   Terminal
}

// NewMJPEGAnimator renders with enc. If t is nil an Xterm on the encoder's
// writer is used.
func NewMJPEGAnimator(enc *Encoder, t Terminal) *MJPEGAnimator {
	if t == nil {
		t = &Xterm{
			Writer: enc.w,
		}
	}
	return &MJPEGAnimator{
		enc: enc,
		t:   t,
	}
}

/*
Animate renders frames from r at no more than fps frames per second until
the stream ends or ctx is done. Cancellation is not an error.
*/
func (a *MJPEGAnimator) Animate(ctx context.Context, r io.Reader, fps int) error {
	if fps <= 0 {
		return fmt.Errorf("opendot: fps must be positive, got %d", fps)
	}
	a.t.ShowCursor(false)
	defer a.t.ShowCursor(true)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	reader := MJPEGReader{Reader: r}
	drawn := 0
	for frame := range reader.ReadAll(ctx) {
		if frame.Err != nil {
			return frame.Err
		}

		delay := time.After(time.Second / time.Duration(fps))

		g, err := Render(frame.Image, a.enc.cfg)
		if err != nil {
			return err
		}
		a.t.ResetCursor(drawn)
		if err := a.enc.encodeFrame(g); err != nil {
			return err
		}
		drawn = g.Rows

		select {
		case <-delay:
		case <-ctx.Done():
			return nil
		}
	}
	return nil
}
