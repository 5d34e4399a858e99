package trackbar

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
)

// newTermTracker builds a terminal-mode tracker against a fake console of
// the given width.
func newTermTracker(total uint64, width int) (*Tracker, *bytes.Buffer) {
	var buf bytes.Buffer
	t := NewWithConsole(total, "test job", &buf, false, fakeConsole{interactive: true, width: width})
	return t, &buf
}

// termSegments splits terminal output on carriage returns. Every write
// ends with \r, so segments alternate between erase runs and bar lines.
func termSegments(buf *bytes.Buffer) []string {
	return strings.Split(buf.String(), "\r")
}

// TestTerminalErasesExactPriorLine verifies each redraw blanks exactly as
// many characters as the previous line held
func TestTerminalErasesExactPriorLine(t *testing.T) {
	tr, buf := newTermTracker(100, 80)
	tr.SetUpdateInterval(10)
	tr.Advance(10)

	segs := termSegments(buf)
	// Leading empty erase, first line, erase run, second line, tail.
	if len(segs) != 5 {
		t.Fatalf("segment count = %d, want 5: %q", len(segs), segs)
	}
	line, erase := segs[1], segs[2]
	if erase != strings.Repeat(" ", len(line)) {
		t.Errorf("erase run of %d spaces, want %d", len(erase), len(line))
	}
}

// TestTerminalLineGeometry verifies label padding, bracket placement, and
// bar sizing against the width budget
func TestTerminalLineGeometry(t *testing.T) {
	_, buf := newTermTracker(100, 80)

	line := termSegments(buf)[1]
	if !strings.HasPrefix(line, " test job") {
		t.Fatalf("line = %q, want leading space and label", line)
	}

	// 80 columns - 9 overhead - 20 label - 7 percent - 2*3 digits = 38 cells.
	const wantBar = 38
	open := strings.IndexByte(line, '[')
	shut := strings.IndexByte(line, ']')
	if open != 22 {
		t.Errorf("'[' at %d, want 22", open)
	}
	if shut-open-1 != wantBar {
		t.Errorf("bar width = %d, want %d", shut-open-1, wantBar)
	}
	// Zero progress: every cell is the space glyph.
	if body := line[open+1 : shut]; body != strings.Repeat("-", wantBar) {
		t.Errorf("bar body = %q, want all space glyphs", body)
	}
	if !strings.Contains(line, "  0.0%") {
		t.Errorf("line = %q, want 0.0%% field", line)
	}
	if !strings.Contains(line, ", 0/100, ") {
		t.Errorf("line = %q, want 0/100 counter", line)
	}
	if !strings.HasSuffix(line, " remaining") {
		t.Errorf("line = %q, want remaining suffix", line)
	}
}

// TestTerminalCompletionFillsBar verifies the completed bar is entirely
// fill glyphs at 100%
func TestTerminalCompletionFillsBar(t *testing.T) {
	tr, buf := newTermTracker(100, 80)
	tr.Advance(100)

	out := buf.String()
	segs := termSegments(buf)
	last := segs[len(segs)-2] // final segment is the "\n" tail
	if !strings.Contains(last, strings.Repeat("|", 38)) {
		t.Errorf("final line = %q, want full bar", last)
	}
	if !strings.Contains(out, "100.0%") {
		t.Errorf("output missing 100.0%%: %q", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("completed bar not finalized with newline")
	}
}

// TestNarrowTerminalSkipsRender verifies a terminal too narrow for any
// bar cells skips the cycle instead of corrupting the line
func TestNarrowTerminalSkipsRender(t *testing.T) {
	tr, buf := newTermTracker(100, 40)
	tr.Advance(50)

	if strings.ContainsRune(buf.String(), '[') {
		t.Errorf("narrow terminal still drew a bar: %q", buf.String())
	}
}

// TestSetGlyphsChangesBar verifies reconfigured glyphs show up on the
// next render
func TestSetGlyphsChangesBar(t *testing.T) {
	tr, buf := newTermTracker(100, 80)
	tr.SetGlyphs('#', '.')
	tr.SetUpdateInterval(50)
	tr.Advance(50)

	segs := termSegments(buf)
	line := segs[len(segs)-2]
	if !strings.Contains(line, "[") || !strings.Contains(line, "#") {
		t.Errorf("line = %q, want '#' fill glyphs", line)
	}
	if strings.Contains(line, "|") {
		t.Errorf("line = %q, still using default fill glyph", line)
	}
}

// TestLogModeNeverRewrites verifies log mode output is append-only with
// no carriage returns
func TestLogModeNeverRewrites(t *testing.T) {
	tr, buf := newLogTracker(20)
	tr.SetUpdateInterval(5)
	for i := 0; i < 20; i++ {
		tr.Increment()
	}

	if strings.ContainsRune(buf.String(), '\r') {
		t.Errorf("log mode emitted a carriage return: %q", buf.String())
	}
}

// TestLogModeHeaderAndTimestamp verifies the one-time header line and the
// millisecond timestamp prefix on every render
func TestLogModeHeaderAndTimestamp(t *testing.T) {
	tr, buf := newLogTracker(10)
	tr.Advance(10)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if lines[0] != "test job" {
		t.Errorf("header = %q, want %q", lines[0], "test job")
	}

	stamp := regexp.MustCompile(`^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\.\d{3}\]\t`)
	for _, line := range lines[1:] {
		if line == "" {
			continue
		}
		if !stamp.MatchString(line) {
			t.Errorf("line %q missing timestamp prefix", line)
		}
	}
}

// TestPercentFieldConstantWidth verifies the percentage never shifts
// columns between 0% and 100%
func TestPercentFieldConstantWidth(t *testing.T) {
	for _, ratio := range []float64{0, 0.001, 0.05, 0.5, 0.999, 1} {
		if got := len(percentField(ratio)); got != 6 {
			t.Errorf("percentField(%v) = %q, want width 6", ratio, percentField(ratio))
		}
	}
	if got := percentField(1); got != "100.0%" {
		t.Errorf("percentField(1) = %q, want 100.0%%", got)
	}
}

// TestRenderFaultRecovered verifies a panic while composing the line is
// contained and the tracked operation keeps going
func TestRenderFaultRecovered(t *testing.T) {
	var buf bytes.Buffer
	con := panickyConsole{fakeConsole{interactive: true, width: 80}}
	tr := NewWithConsole(10, "test job", &buf, false, con)

	// Both the construction render and this one hit the faulting width
	// query; neither may escape.
	if got := tr.Advance(10); got != 10 {
		t.Errorf("Advance = %d, want 10", got)
	}
}

// panickyConsole faults on every width query, simulating an internal
// rendering fault.
type panickyConsole struct{ fakeConsole }

func (panickyConsole) Width() int { panic("width query exploded") }

// TestPadDescription verifies labels pad and truncate to the fixed width
func TestPadDescription(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"abc", "abc" + strings.Repeat(" ", 17)},
		{"", strings.Repeat(" ", 20)},
		{"exactly twenty chars", "exactly twenty chars"},
		{"a label that is far too long", "a label that is far "},
	}
	for _, tc := range cases {
		if got := padDescription(tc.in); got != tc.want {
			t.Errorf("padDescription(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// TestCountDigits verifies the counter column reservation math
func TestCountDigits(t *testing.T) {
	cases := []struct {
		n    uint64
		want int
	}{
		{0, 1}, {1, 1}, {9, 1}, {10, 2}, {99, 2}, {100, 3}, {1000, 4},
	}
	for _, tc := range cases {
		if got := countDigits(tc.n); got != tc.want {
			t.Errorf("countDigits(%d) = %d, want %d", tc.n, got, tc.want)
		}
	}
}
