package trackbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// ratio returns the completion fraction, treating a zero-total operation
// as already complete.
func (t *Tracker) ratio(cur uint64) float64 {
	if t.total == 0 {
		return 1.0
	}
	return float64(cur) / float64(t.total)
}

// render writes the current state to the output stream. Callers must hold
// t.mu. A fault while composing the line is contained here and reported
// as a diagnostic: the tracked operation must never die because its
// progress display did.
func (t *Tracker) render(cur uint64) {
	if t.silent {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Uint64("progress", cur).
				Uint64("total", t.total).
				Msgf("progress render failed: %v", r)
		}
	}()

	ratio := t.ratio(cur)
	if t.logMode {
		t.renderLogLine(cur, ratio)
		return
	}
	t.renderTerminalLine(cur, ratio)
}

// renderLogLine appends one timestamped progress line. Log mode never
// rewrites earlier output.
func (t *Tracker) renderLogLine(cur uint64, ratio float64) {
	fmt.Fprintf(t.out, "%s\t%s, %d/%d, %s remaining\n",
		time.Now().Format("[2006-01-02 15:04:05.000]"),
		percentField(ratio),
		cur, t.total,
		FormatDuration(t.remaining(ratio)))
}

// renderTerminalLine redraws the bar in place over the previous one.
func (t *Tracker) renderTerminalLine(cur uint64, ratio float64) {
	// Blank out exactly the previous line before drawing over it.
	fmt.Fprint(t.out, strings.Repeat(" ", len(t.lastLine))+"\r")
	t.lastLine = ""

	barLen := t.barLength()
	if barLen < 1 {
		// Terminal too narrow for a bar; skip this cycle.
		return
	}

	fill := int(float64(barLen) * ratio)
	line := " " + t.description +
		" [" + strings.Repeat(string(t.barGlyph), fill) +
		strings.Repeat(string(t.spaceGlyph), barLen-fill) +
		"] " + percentField(ratio) +
		fmt.Sprintf(", %d/%d, ", cur, t.total) +
		FormatDuration(t.remaining(ratio)) + " remaining"

	t.lastLine = line
	fmt.Fprint(t.out, line+"\r")
}

// barLength computes how many glyph cells fit between the brackets after
// reserving room for the label, the percentage field, and the
// "current/total" counters on a line capped at maxBarWidth columns.
func (t *Tracker) barLength() int {
	width := min(t.con.Width(), maxBarWidth)
	return width - 9 - len(t.description) - percentFieldWidth - 2*countDigits(t.total)
}

// remaining estimates time left by linear extrapolation: the projected
// total duration is elapsed/ratio, assuming constant throughput. Bursty
// workloads will see the estimate swing; that is inherent to the law.
func (t *Tracker) remaining(ratio float64) time.Duration {
	// Epsilon keeps a zero ratio large-but-finite instead of dividing
	// by zero.
	if ratio == 0 {
		ratio = 0.01
	}
	elapsed := time.Since(time.Unix(0, t.startNano.Load()))
	projected := float64(elapsed) / ratio
	return time.Duration(projected - float64(elapsed))
}

// percentField formats ratio as a fixed-width percentage, "  NN.N%".
// The width is constant from 0% to 100% so redraws never shift columns.
func percentField(ratio float64) string {
	return fmt.Sprintf("%5.1f%%", ratio*100)
}

// countDigits returns the decimal digit count of n, with a floor of one
// digit so tiny totals still reserve a column per counter.
func countDigits(n uint64) int {
	if n < 2 {
		n = 2
	}
	d := 0
	for ; n > 0; n /= 10 {
		d++
	}
	return d
}
