package window

import (
	"math/rand"
	"testing"
)

func TestPushPartialWindowMean(t *testing.T) {
	w := New(4)
	if got := w.Push(10); got != 10 {
		t.Fatalf("mean after 1 push: got %d want 10", got)
	}
	if got := w.Push(20); got != 15 {
		t.Fatalf("mean after 2 pushes: got %d want 15", got)
	}
	if got := w.Push(30); got != 20 {
		t.Fatalf("mean after 3 pushes: got %d want 20", got)
	}
	if w.Full() {
		t.Fatal("window should not be full after 3 of 4 pushes")
	}
}

func TestPushEvictsOldest(t *testing.T) {
	w := New(3)
	w.Push(1)
	w.Push(2)
	w.Push(3)
	if got := w.Push(10); got != 5 {
		t.Fatalf("mean over {2,3,10}: got %d want 5", got)
	}
	if got := w.Oldest(); got != 2 {
		t.Fatalf("oldest: got %d want 2", got)
	}
}

// The reported mean must always equal an independent recomputation over the
// last min(pushes, capacity) values of a shadow full-history buffer.
func TestMeanMatchesShadowHistory(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, capacity := range []int{1, 2, 9, 26, 52} {
		w := New(capacity)
		history := make([]int64, 0, 512)
		for i := 0; i < 500; i++ {
			v := rng.Int63n(20_000)
			got := w.Push(v)
			history = append(history, v)

			n := len(history)
			if n > capacity {
				n = capacity
			}
			var sum int64
			for _, h := range history[len(history)-n:] {
				sum += h
			}
			want := sum / int64(n)
			if got != want {
				t.Fatalf("capacity %d push %d: got mean %d want %d", capacity, i, got, want)
			}
			if w.Count() != n {
				t.Fatalf("capacity %d push %d: got count %d want %d", capacity, i, w.Count(), n)
			}
		}
	}
}

func TestOldestTracksEvictionSlot(t *testing.T) {
	w := New(3)
	for i := int64(1); i <= 7; i++ {
		w.Push(i)
		want := i - 2
		if want < 1 {
			want = 1
		}
		if got := w.Oldest(); got != want {
			t.Fatalf("after pushing %d: oldest got %d want %d", i, got, want)
		}
	}
}
