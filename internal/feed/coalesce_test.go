package feed

import (
	"testing"
	"time"
)

var base = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestFirstEventFiresImmediately(t *testing.T) {
	c := NewCoalescer(250*time.Millisecond, 500*time.Millisecond)

	if got := c.Observe(DirNext, base); got != DirNext {
		t.Errorf("first event = %v, want DirNext", got)
	}
}

func TestGestureWindowAbsorbsFollowUps(t *testing.T) {
	c := NewCoalescer(250*time.Millisecond, 500*time.Millisecond)

	c.Observe(DirNext, base)
	for i := 1; i <= 9; i++ {
		at := base.Add(time.Duration(i) * 20 * time.Millisecond)
		if got := c.Observe(DirNext, at); got != DirNone {
			t.Fatalf("delta %d fired %v inside the gesture window", i, got)
		}
	}

	// Nothing pending either: the burst was one gesture.
	if got := c.Tick(base.Add(time.Second)); got != DirNone {
		t.Errorf("Tick released %v after an absorbed burst", got)
	}
}

func TestLateEventBecomesPendingIntent(t *testing.T) {
	c := NewCoalescer(250*time.Millisecond, 500*time.Millisecond)

	c.Observe(DirNext, base)
	// Past the gesture window, still settling.
	if got := c.Observe(DirNext, base.Add(300*time.Millisecond)); got != DirNone {
		t.Fatalf("event during settle fired %v", got)
	}

	// Held until the settle period ends, then released exactly once.
	if got := c.Tick(base.Add(400 * time.Millisecond)); got != DirNone {
		t.Errorf("Tick fired %v before settle ended", got)
	}
	if got := c.Tick(base.Add(501 * time.Millisecond)); got != DirNext {
		t.Errorf("Tick after settle = %v, want DirNext", got)
	}
	if got := c.Tick(base.Add(502 * time.Millisecond)); got != DirNone {
		t.Errorf("second Tick fired %v, intent must not repeat", got)
	}
}

func TestLatestIntentWins(t *testing.T) {
	c := NewCoalescer(250*time.Millisecond, 500*time.Millisecond)

	c.Observe(DirNext, base)
	c.Observe(DirNext, base.Add(300*time.Millisecond))
	c.Observe(DirPrevious, base.Add(350*time.Millisecond)) // overwrites, never queues

	if got := c.Tick(base.Add(600 * time.Millisecond)); got != DirPrevious {
		t.Errorf("released intent = %v, want DirPrevious", got)
	}
	if got := c.Tick(base.Add(700 * time.Millisecond)); got != DirNone {
		t.Errorf("intent queued a second transition: %v", got)
	}
}

func TestIdleAfterSettleAcceptsNextGesture(t *testing.T) {
	c := NewCoalescer(250*time.Millisecond, 500*time.Millisecond)

	c.Observe(DirNext, base)
	at := base.Add(600 * time.Millisecond)
	if got := c.Observe(DirNext, at); got != DirNext {
		t.Errorf("fresh gesture after settle = %v, want DirNext", got)
	}
}

func TestStalePendingSupersededByFreshEvent(t *testing.T) {
	c := NewCoalescer(250*time.Millisecond, 500*time.Millisecond)

	c.Observe(DirNext, base)
	c.Observe(DirPrevious, base.Add(300*time.Millisecond))

	// The next raw event arrives after the settle deadline with no Tick in
	// between. It supersedes the held intent: one transition, its direction.
	if got := c.Observe(DirNext, base.Add(800*time.Millisecond)); got != DirNext {
		t.Errorf("fresh event = %v, want DirNext", got)
	}
	if got := c.Tick(base.Add(2 * time.Second)); got != DirNone {
		t.Errorf("stale intent leaked through Tick: %v", got)
	}
}

func TestSettlingReportsWindow(t *testing.T) {
	c := NewCoalescer(250*time.Millisecond, 500*time.Millisecond)

	if c.Settling(base) {
		t.Error("idle coalescer reports settling")
	}
	c.Observe(DirNext, base)
	if !c.Settling(base.Add(100 * time.Millisecond)) {
		t.Error("should be settling right after a transition")
	}
	if c.Settling(base.Add(600 * time.Millisecond)) {
		t.Error("settle period is bounded")
	}
}
