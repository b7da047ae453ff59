package utils

import (
	"sync"
	"time"

	"github.com/rivo/uniseg"
)

// GraphemeCount returns the number of grapheme clusters in s.
func GraphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// GraphemeIndexToByteOffset converts a grapheme cluster index into a byte offset
// in s. Returns -1 if the index is out of bounds. An index equal to the cluster
// count maps to len(s).
func GraphemeIndexToByteOffset(s string, index int) int {
	if index <= 0 {
		return 0
	}
	offset := 0
	count := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		if count == index {
			return offset
		}
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		offset += len(cluster)
		count++
	}
	if count == index {
		return len(s)
	}
	return -1
}

// SliceGraphemes returns the substring of s covering grapheme clusters
// [start, end). Out-of-range bounds are clamped.
func SliceGraphemes(s string, start, end int) string {
	total := GraphemeCount(s)
	if start < 0 {
		start = 0
	}
	if end > total {
		end = total
	}
	if start >= end {
		return ""
	}
	from := GraphemeIndexToByteOffset(s, start)
	to := GraphemeIndexToByteOffset(s, end)
	return s[from:to]
}

// Debouncer delays a function call until a quiet period has elapsed.
type Debouncer struct {
	mutex      sync.Mutex
	timer      *time.Timer
	lastCalled time.Time
}

// Debounce schedules fn after the given duration, canceling any previous
// pending call. Each invocation restarts the idle window.
func (d *Debouncer) Debounce(duration time.Duration, fn func()) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(duration, func() {
		d.mutex.Lock()
		d.lastCalled = time.Now()
		d.timer = nil
		d.mutex.Unlock()
		fn()
	})
}

// Cancel stops any pending call without running it.
func (d *Debouncer) Cancel() {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
