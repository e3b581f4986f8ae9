package fs

import "time"

// SetClock replaces the clock used for time thresholds.
func (w *Walker) SetClock(now func() time.Time) {
	w.now = now
}
