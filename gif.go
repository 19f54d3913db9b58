package opendot

import (
	"context"
	"image"
	"image/draw"
	"image/gif"
	"runtime"
	"sync"
	"time"
)

// Animation is a sequence of rendered frames with their display delays.
type Animation struct {
	Frames []*Grid
	Delays []time.Duration
	// LoopCount follows image/gif: 0 loops forever, -1 plays once and n
	// plays n+1 times.
	LoopCount int
}

// ComposeGIF draws every frame of g onto a canvas the size of the logical
// screen and returns a snapshot of the canvas after each frame. Disposal
// methods of the previous frame are applied before the next one is drawn.
func ComposeGIF(g *gif.GIF) []*image.NRGBA {
	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		for _, frame := range g.Image {
			bounds = bounds.Union(frame.Bounds())
		}
	}
	canvas := image.NewNRGBA(bounds)
	composed := make([]*image.NRGBA, 0, len(g.Image))

	var previous *image.NRGBA
	for i, frame := range g.Image {
		disposal := byte(0)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		if disposal == gif.DisposalPrevious {
			previous = cloneNRGBA(canvas)
		}

		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
		composed = append(composed, cloneNRGBA(canvas))

		switch disposal {
		// Background clears the frame's area for the next frame.
		case gif.DisposalBackground:
			draw.Draw(canvas, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
		// Previous restores whatever was under the frame.
		case gif.DisposalPrevious:
			canvas = previous
		}
	}
	return composed
}

func cloneNRGBA(src *image.NRGBA) *image.NRGBA {
	dst := image.NewNRGBA(src.Rect)
	copy(dst.Pix, src.Pix)
	return dst
}

// RenderGIF composes and renders every frame of g. Frames are independent
// renders and run in parallel; each frame's own render stays sequential.
func RenderGIF(g *gif.GIF, cfg Config) (*Animation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(g.Image) == 0 {
		return nil, &InvalidImageError{Width: g.Config.Width, Height: g.Config.Height, Reason: "gif has no frames"}
	}
	frames := ComposeGIF(g)

	anim := &Animation{
		Frames:    make([]*Grid, len(frames)),
		Delays:    make([]time.Duration, len(frames)),
		LoopCount: g.LoopCount,
	}
	for i := range frames {
		if i < len(g.Delay) {
			anim.Delays[i] = time.Duration(g.Delay[i]) * time.Second / 100
		}
	}

	errs := make([]error, len(frames))
	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	var wg sync.WaitGroup
	for i, frame := range frames {
		wg.Add(1)
		go func(i int, frame image.Image) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			anim.Frames[i], errs[i] = Render(frame, cfg)
		}(i, frame)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return anim, nil
}

/*
Play draws each frame of anim to the encoder's writer, moving the cursor
back to the top of the frame through term before the next one. Delays and
the loop count are respected. Play returns ctx.Err() when ctx is cancelled
and always shows the cursor again before returning.
*/
func (enc *Encoder) Play(ctx context.Context, anim *Animation, term Terminal) error {
	if len(anim.Frames) == 0 {
		return nil
	}
	if term == nil {
		term = &Xterm{Writer: enc.w}
	}
	term.ShowCursor(false)
	defer term.ShowCursor(true)

	plays := anim.LoopCount + 1
	if anim.LoopCount < 0 {
		plays = 1
	}
	drawn := 0
	for c := 0; anim.LoopCount == 0 || c < plays; c++ {
		for i, frame := range anim.Frames {
			term.ResetCursor(drawn)
			if err := enc.encodeFrame(frame); err != nil {
				return err
			}
			drawn = frame.Rows
			if err := sleep(ctx, anim.Delays[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
