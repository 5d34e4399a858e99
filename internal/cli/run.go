package cli

import (
	"bufio"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/rescale/trackbar/internal/console"
	"github.com/rescale/trackbar/internal/trackbar"
)

// plainConsole reports a non-interactive stream of fixed width, used to
// force log-mode output regardless of where the stream points.
type plainConsole struct{}

func (plainConsole) Interactive(io.Writer) bool { return false }
func (plainConsole) Width() int                 { return console.DefaultWidth }

func newRunCmd() *cobra.Command {
	var (
		total     uint64
		desc      string
		workers   int
		step      uint64
		delay     time.Duration
		interval  uint64
		glyphs    string
		silent    bool
		forceLog  bool
		fromStdin bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Drive a progress bar over a simulated or piped workload",
		Long: `Run a tracker to completion, either over a simulated workload
(--workers goroutines each reporting --step units after --delay of
simulated work) or by counting lines piped to stdin (--stdin, one
work unit per line).

The bar renders on stderr so it never mixes with piped data.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if step == 0 {
				return fmt.Errorf("--step must be at least 1")
			}
			if glyphs != "" && len(glyphs) != 2 {
				return fmt.Errorf("--glyphs wants exactly two characters, got %q", glyphs)
			}

			var con console.Console = console.System()
			if forceLog {
				con = plainConsole{}
			}

			tracker := trackbar.NewWithConsole(total, desc, cmd.ErrOrStderr(), silent, con)
			defer tracker.Close()

			if interval > 0 {
				tracker.SetUpdateInterval(interval)
			}
			if glyphs != "" {
				tracker.SetGlyphs(glyphs[0], glyphs[1])
			}

			if fromStdin {
				return countStdin(cmd.InOrStdin(), tracker, total)
			}
			simulate(tracker, total, workers, step, delay)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&total, "total", 100, "Total number of work units")
	cmd.Flags().StringVar(&desc, "description", "working", "Label shown next to the bar")
	cmd.Flags().IntVar(&workers, "workers", 4, "Concurrent goroutines advancing the tracker")
	cmd.Flags().Uint64Var(&step, "step", 1, "Units reported per advance")
	cmd.Flags().DurationVar(&delay, "delay", 20*time.Millisecond, "Simulated work time per advance")
	cmd.Flags().Uint64Var(&interval, "interval", 0, "Redraw every N units (0 = total/1000)")
	cmd.Flags().StringVar(&glyphs, "glyphs", "", "Two characters for the filled and empty bar segments, e.g. \"#.\"")
	cmd.Flags().BoolVar(&silent, "silent", false, "Suppress all progress output")
	cmd.Flags().BoolVar(&forceLog, "log", false, "Force log-mode output even on a terminal")
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "Advance one unit per line read from stdin")

	return cmd
}

// simulate fans total units out over workers goroutines, each sleeping
// delay per batch to mimic real work. The dispenser guarantees the
// advanced deltas sum to exactly total.
func simulate(tracker *trackbar.Tracker, total uint64, workers int, step uint64, delay time.Duration) {
	if workers < 1 {
		workers = 1
	}

	units := make(chan uint64)
	go func() {
		defer close(units)
		for remaining := total; remaining > 0; {
			d := min(step, remaining)
			units <- d
			remaining -= d
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for d := range units {
				time.Sleep(delay)
				tracker.Advance(d)
			}
		}()
	}
	wg.Wait()
}

// countStdin advances the tracker once per input line, up to total.
func countStdin(r io.Reader, tracker *trackbar.Tracker, total uint64) error {
	scanner := bufio.NewScanner(r)
	var seen uint64
	for scanner.Scan() {
		if seen == total {
			return fmt.Errorf("stdin supplied more than %d lines", total)
		}
		seen++
		tracker.Increment()
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}
	if seen < total {
		GetLogger().Warnf("stdin ended after %d of %d lines", seen, total)
	}
	return nil
}
