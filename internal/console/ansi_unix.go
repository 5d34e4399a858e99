//go:build !windows
// +build !windows

package console

import "io"

// EnableVirtualTerminal is a no-op on non-Windows platforms.
func EnableVirtualTerminal(w io.Writer) {
	// Unix terminals handle carriage returns natively
}
