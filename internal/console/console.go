// Package console abstracts the terminal capabilities the progress tracker
// needs: whether an output stream is attached to an interactive terminal,
// and how many columns that terminal has. The real implementation queries
// the OS; tests substitute a fake for deterministic rendering.
package console

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// DefaultWidth is assumed when the terminal width cannot be determined.
const DefaultWidth = 100

// Console reports terminal capabilities for an output stream.
type Console interface {
	// Interactive returns true if w is connected to a terminal device,
	// false if redirected to a file, pipe, or log collector.
	Interactive(w io.Writer) bool

	// Width returns the current column width of the controlling terminal.
	Width() int
}

// System returns a Console backed by the real terminal.
func System() Console {
	return systemConsole{}
}

type systemConsole struct{}

func (systemConsole) Interactive(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (systemConsole) Width() int {
	// Queried on stdin, which stays bound to the controlling terminal
	// even when stdout/stderr are redirected.
	width, _, err := term.GetSize(int(os.Stdin.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	return width
}
