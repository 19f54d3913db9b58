package opendot

import (
	"fmt"
	"io"
)

const (
	escHideCursor = "\033[?25l"
	escShowCursor = "\033[?12l\033[?25h"
)

// Terminal positions the cursor between animation frames.
type Terminal interface {
	ResetCursor(rows int)
	ShowCursor(show bool)
}

// Xterm drives a VT100 compatible terminal with escape codes.
type Xterm struct {
	Writer io.Writer
}

// ResetCursor moves the cursor to the start of the line, rows lines up.
func (term *Xterm) ResetCursor(rows int) {
	if rows <= 0 {
		return
	}
	fmt.Fprintf(term.Writer, "\033[999D\033[%dA", rows)
}

func (term *Xterm) ShowCursor(show bool) {
	if show {
		io.WriteString(term.Writer, escShowCursor)
	} else {
		io.WriteString(term.Writer, escHideCursor)
	}
}
