package trackbar

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rescale/trackbar/internal/console"
)

const (
	// descriptionWidth is the fixed width the label is padded or
	// truncated to, so bar geometry is stable across trackers.
	descriptionWidth = 20

	// maxBarWidth caps the rendered line regardless of terminal size.
	maxBarWidth = 120

	// percentFieldWidth is the column budget reserved for the
	// percentage field when sizing the bar.
	percentFieldWidth = 7
)

// Tracker renders a live progress indicator for one long-running
// operation. The counter only moves forward; reaching the total finalizes
// the display. The output stream is borrowed, never closed.
type Tracker struct {
	total  uint64
	silent bool

	out     io.Writer
	con     console.Console
	logMode bool

	progress  atomic.Uint64
	startNano atomic.Int64 // UnixNano baseline for the time estimate

	mu          sync.Mutex // guards the fields below and all rendering
	description string
	interval    uint64
	barGlyph    byte
	spaceGlyph  byte
	lastLine    string
	closed      bool
}

// New creates a tracker for an operation of total work units, writing its
// display to out. A silent tracker performs no output and no timing work;
// every operation on it is a no-op. An initial zero-progress state is
// rendered immediately, and a zero total is treated as already complete.
func New(total uint64, description string, out io.Writer, silent bool) *Tracker {
	return NewWithConsole(total, description, out, silent, console.System())
}

// NewWithConsole is New with an injected terminal capability, for callers
// that need to force a rendering mode or fake a terminal in tests.
func NewWithConsole(total uint64, description string, out io.Writer, silent bool, con console.Console) *Tracker {
	t := &Tracker{
		total:  total,
		silent: silent,
	}
	if silent {
		return t
	}

	t.out = out
	t.con = con
	t.interval = max(1, total/1000)
	t.barGlyph = '|'
	t.spaceGlyph = '-'
	t.startNano.Store(time.Now().UnixNano())

	// The rendering strategy is fixed here for the tracker's lifetime.
	if t.logMode = !con.Interactive(out); t.logMode {
		// Header line so redirected logs identify the operation.
		fmt.Fprintln(out, description)
	} else {
		console.EnableVirtualTerminal(out)
	}

	t.description = padDescription(description)

	t.mu.Lock()
	t.render(0)
	t.mu.Unlock()
	if total == 0 {
		fmt.Fprintln(out)
	}
	return t
}

// Advance adds delta completed work units and redraws the display if the
// update crossed an interval boundary or completed the operation. It is
// safe to call from multiple goroutines; the post-update counter value is
// returned.
//
// Advancing past the total means the caller mis-tracked its work units.
// That is a programming error and panics rather than being clamped.
func (t *Tracker) Advance(delta uint64) uint64 {
	if t.silent || delta == 0 {
		return t.progress.Load()
	}

	// Racy on purpose: goroutines racing on the very first advance may
	// each store a baseline and the last write wins. Only the displayed
	// time estimate is affected, never the counter.
	if t.progress.Load() == 0 {
		t.startNano.Store(time.Now().UnixNano())
	}

	after := t.progress.Add(delta)
	if after > t.total {
		panic(fmt.Sprintf("trackbar: progress %d exceeds total %d", after, t.total))
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// Render on completion, or when an interval multiple was crossed.
	// The quotient comparison renders once even when delta jumps over
	// several multiples, and not at all between boundaries.
	if after == t.total || (after-delta)/t.interval < after/t.interval {
		t.render(after)
	}
	if after == t.total {
		// Finalize the line; nothing will overwrite it anymore.
		fmt.Fprintln(t.out)
	}
	return after
}

// Increment is shorthand for Advance(1).
func (t *Tracker) Increment() uint64 {
	return t.Advance(1)
}

// Progress returns the current counter value.
func (t *Tracker) Progress() uint64 {
	return t.progress.Load()
}

// Total returns the fixed work unit total.
func (t *Tracker) Total() uint64 {
	return t.total
}

// SetUpdateInterval sets the number of work units between redraws.
// Values above the total are clamped to the total.
func (t *Tracker) SetUpdateInterval(n uint64) {
	if t.silent {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if n > t.total {
		n = t.total
	}
	if n == 0 {
		n = 1
	}
	t.interval = n
}

// SetGlyphs sets the characters drawn for the filled and unfilled
// portions of the bar.
func (t *Tracker) SetGlyphs(bar, space byte) {
	if t.silent {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.barGlyph = bar
	t.spaceGlyph = space
}

// Close finalizes the tracker. If the operation never reached its total,
// a last render is emitted as a best-effort diagnostic of the abnormal
// termination. Close is idempotent and is normally deferred right after
// construction.
func (t *Tracker) Close() {
	if t.silent {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.closed = true
	if cur := t.progress.Load(); cur != t.total {
		// Not supposed to happen, but useful when debugging.
		t.render(cur)
		fmt.Fprintln(t.out)
	}
}

// padDescription pads or truncates s to the fixed label width.
func padDescription(s string) string {
	if len(s) >= descriptionWidth {
		return s[:descriptionWidth]
	}
	return s + strings.Repeat(" ", descriptionWidth-len(s))
}
