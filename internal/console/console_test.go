package console

import (
	"bytes"
	"os"
	"testing"
)

// TestInteractiveNonFileWriter verifies anything that is not an *os.File
// reports as non-interactive
func TestInteractiveNonFileWriter(t *testing.T) {
	var buf bytes.Buffer
	if System().Interactive(&buf) {
		t.Error("bytes.Buffer reported as interactive")
	}
}

// TestInteractiveDevNull verifies a file that is not a terminal device
// reports as non-interactive
func TestInteractiveDevNull(t *testing.T) {
	f, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		t.Fatalf("open %s: %v", os.DevNull, err)
	}
	defer f.Close()

	if System().Interactive(f) {
		t.Errorf("%s reported as interactive", os.DevNull)
	}
}

// TestWidthAlwaysPositive verifies the platform default is substituted
// when no terminal is attached
func TestWidthAlwaysPositive(t *testing.T) {
	if got := System().Width(); got <= 0 {
		t.Errorf("Width() = %d, want positive", got)
	}
}

// TestEnableVirtualTerminalNonFile verifies the shim tolerates arbitrary
// writers
func TestEnableVirtualTerminalNonFile(t *testing.T) {
	var buf bytes.Buffer
	EnableVirtualTerminal(&buf) // must not panic
}
