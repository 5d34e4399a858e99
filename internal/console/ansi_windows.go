//go:build windows
// +build windows

package console

import (
	"io"
	"os"

	"golang.org/x/sys/windows"
)

// EnableVirtualTerminal enables Virtual Terminal processing on Windows
// terminals so carriage-return based line rewriting works properly.
func EnableVirtualTerminal(w io.Writer) {
	f, ok := w.(*os.File)
	if !ok {
		return
	}

	handle := windows.Handle(f.Fd())
	var mode uint32

	// Get current console mode
	if err := windows.GetConsoleMode(handle, &mode); err == nil {
		// Enable Virtual Terminal Processing (0x0004)
		const ENABLE_VIRTUAL_TERMINAL_PROCESSING = 0x0004
		_ = windows.SetConsoleMode(handle, mode|ENABLE_VIRTUAL_TERMINAL_PROCESSING)
	}
}
