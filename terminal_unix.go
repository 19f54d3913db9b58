//go:build unix

package opendot

import (
	"os"

	"golang.org/x/sys/unix"
)

// TerminalSize reports the columns and lines of the terminal attached to
// stderr. Stdout and stdin are often redirected when rendering.
func TerminalSize() (cols, lines int, err error) {
	ws, err := unix.IoctlGetWinsize(int(os.Stderr.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return -1, -1, err
	}
	return int(ws.Col), int(ws.Row), nil
}
