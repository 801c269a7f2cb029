package feed

import "time"

// Coalescer collapses continuous input streams (wheel deltas, drag motion)
// into discrete feed transitions. A physical scroll gesture
// emits many raw events; naively forwarding each one would skip several
// cards per flick. The coalescer fires one transition per gesture window,
// then holds further input until the visual settle period has elapsed.
//
// State machine:
//
//	Idle     --event-->  fire transition, enter Settling
//	Settling --event within the gesture window-->  absorbed (same gesture)
//	Settling --event after the gesture window-->   Pending(direction)
//	Pending  --event-->  direction overwritten (latest wins, never queued)
//	Settling/Pending --settle deadline passes-->   Idle, firing any pending intent
//
// The coalescer holds no timers of its own; the caller pumps Tick with the
// current time (in the UI this is the frame tick), which keeps every
// transition on the single UI turn that observed the triggering event.
type Coalescer struct {
	window time.Duration // raw events within this span are one gesture
	settle time.Duration // input held after firing until the card settles

	state       coalesceState
	pending     Direction
	gestureEnds time.Time
	settleEnds  time.Time
}

type coalesceState int

const (
	stateIdle coalesceState = iota
	stateSettling
	statePending
)

// Default windows, sized to one user gesture and the card slide animation.
const (
	DefaultGestureWindow = 250 * time.Millisecond
	DefaultSettlePeriod  = 500 * time.Millisecond
)

// NewCoalescer creates a coalescer with the given windows. Zero durations
// fall back to the defaults.
func NewCoalescer(window, settle time.Duration) *Coalescer {
	if window <= 0 {
		window = DefaultGestureWindow
	}
	if settle <= 0 {
		settle = DefaultSettlePeriod
	}
	return &Coalescer{window: window, settle: settle}
}

// Observe feeds one raw input event and returns the transition to apply
// now, or DirNone when the event was coalesced away.
func (c *Coalescer) Observe(dir Direction, at time.Time) Direction {
	if dir == DirNone {
		return DirNone
	}

	// A stale settle period ends the moment we look at the clock.
	released := c.release(at)

	switch c.state {
	case stateIdle:
		c.fire(at)
		// An intent released in the same call still only yields one
		// transition; the fresh event wins.
		_ = released
		return dir

	case stateSettling:
		if at.Before(c.gestureEnds) {
			// Same physical gesture, already transitioned.
			return DirNone
		}
		c.state = statePending
		c.pending = dir
		return DirNone

	default: // statePending
		c.pending = dir // latest direction wins
		return DirNone
	}
}

// Tick advances the clock and returns a pending transition once the settle
// period has elapsed, or DirNone. Call it every animation frame.
func (c *Coalescer) Tick(at time.Time) Direction {
	dir := c.release(at)
	if dir != DirNone {
		c.fire(at)
	}
	return dir
}

// Settling reports whether a transition's settle period is still active.
func (c *Coalescer) Settling(at time.Time) bool {
	return c.state != stateIdle && at.Before(c.settleEnds)
}

// release moves the machine back to Idle if the settle deadline has passed,
// returning the held intent if there was one.
func (c *Coalescer) release(at time.Time) Direction {
	if c.state == stateIdle || at.Before(c.settleEnds) {
		return DirNone
	}
	dir := DirNone
	if c.state == statePending {
		dir = c.pending
	}
	c.state = stateIdle
	c.pending = DirNone
	return dir
}

// fire marks a transition as in flight and starts the gesture and settle
// windows.
func (c *Coalescer) fire(at time.Time) {
	c.state = stateSettling
	c.pending = DirNone
	c.gestureEnds = at.Add(c.window)
	c.settleEnds = at.Add(c.settle)
}
