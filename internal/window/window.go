package window

// Window is a fixed-capacity circular accumulator with an O(1) running mean.
// Before the window reaches capacity the mean covers only the samples pushed
// so far; uninitialized slots are never read.
type Window struct {
	samples []int64
	sum     int64
	cursor  int
	count   int
}

// New allocates a window of the given capacity. Capacity must be positive.
func New(capacity int) *Window {
	if capacity <= 0 {
		panic("window: capacity must be positive")
	}
	return &Window{samples: make([]int64, capacity)}
}

// Push appends a sample, evicting the oldest once at capacity, and returns
// the mean over the last min(pushes, capacity) samples.
func (w *Window) Push(v int64) int64 {
	if w.count == len(w.samples) {
		w.sum -= w.samples[w.cursor]
	} else {
		w.count++
	}
	w.samples[w.cursor] = v
	w.sum += v
	w.cursor = (w.cursor + 1) % len(w.samples)
	return w.sum / int64(w.count)
}

// Mean returns the current mean without pushing. Zero before any push.
func (w *Window) Mean() int64 {
	if w.count == 0 {
		return 0
	}
	return w.sum / int64(w.count)
}

// Oldest returns the sample that the next Push would evict. Once the window
// is full this is the value written capacity pushes ago. Zero before any
// push.
func (w *Window) Oldest() int64 {
	if w.count == 0 {
		return 0
	}
	if w.count < len(w.samples) {
		return w.samples[0]
	}
	return w.samples[w.cursor]
}

// Count returns the number of samples currently held.
func (w *Window) Count() int {
	return w.count
}

// Full reports whether the window has reached capacity.
func (w *Window) Full() bool {
	return w.count == len(w.samples)
}
