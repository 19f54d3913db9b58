//go:build !unix

package opendot

import "errors"

func TerminalSize() (cols, lines int, err error) {
	return -1, -1, errors.New("opendot: terminal size is not supported on this platform")
}
