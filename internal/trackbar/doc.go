// Package trackbar implements a self-updating textual progress indicator
// for long-running operations.
//
// A Tracker counts completed work units against a fixed total, redrawing
// its display only when the counter crosses an update-interval boundary.
// On an interactive terminal the bar redraws in place using carriage
// returns; when output is redirected, the tracker appends timestamped
// progress lines instead. Remaining time is estimated by linear
// extrapolation from the elapsed time since the first advance.
//
//	tracker := trackbar.New(uint64(len(files)), "converting", os.Stderr, false)
//	defer tracker.Close()
//
//	for _, f := range files {
//	    convert(f)
//	    tracker.Increment()
//	}
//
// Advance and Increment are safe to call from multiple goroutines.
package trackbar
