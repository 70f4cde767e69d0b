package internal

import (
	"io"
	"os"

	"golang.org/x/term"
)

// DefaultTerminalWidth is used when the terminal size is unavailable.
const DefaultTerminalWidth = 80

// IsInteractive returns true if the given file descriptor is a TTY.
// This is used to decide whether frames are redrawn in place.
func IsInteractive(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// IsTerminalWriter reports whether w is a file attached to a TTY.
func IsTerminalWriter(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return IsInteractive(f.Fd())
	}
	return false
}

// TerminalWidth returns the column count of w, or DefaultTerminalWidth.
func TerminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return DefaultTerminalWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return DefaultTerminalWidth
	}
	return width
}
