// Package feed owns the "which deal is focused" state machine and the
// fan-in of heterogeneous input events into discrete feed transitions.
package feed

import (
	"errors"

	"github.com/jkariuki/dealdrop/internal/deal"
)

// ErrOutOfRange is returned by GoTo for an index outside the catalogue.
var ErrOutOfRange = errors.New("feed index out of range")

// Direction of a feed transition.
type Direction int

const (
	DirNone Direction = iota
	DirNext
	DirPrevious
)

func (d Direction) String() string {
	switch d {
	case DirNext:
		return "next"
	case DirPrevious:
		return "previous"
	default:
		return "none"
	}
}

// Selection is delivered to subscribers on every successful transition.
type Selection struct {
	Position int
	Deal     deal.Deal
}

// Listener receives selection changes synchronously, in the same event-loop
// turn as the transition that caused them.
type Listener func(Selection)

// Controller is the single source of truth for the focused deal. The
// catalogue length is fixed at construction; live insertions show up on the
// next rebuild, not here.
type Controller struct {
	deals     []deal.Deal
	position  int
	listeners []Listener
}

// NewController creates a controller focused on the first deal.
func NewController(deals []deal.Deal) *Controller {
	return &Controller{deals: deals}
}

// Len returns the catalogue size.
func (c *Controller) Len() int { return len(c.deals) }

// Position returns the current feed index.
func (c *Controller) Position() int { return c.position }

// Current returns the focused deal; ok is false for an empty catalogue.
func (c *Controller) Current() (deal.Deal, bool) {
	if len(c.deals) == 0 {
		return deal.Deal{}, false
	}
	return c.deals[c.position], true
}

// Subscribe registers a listener for selection changes.
func (c *Controller) Subscribe(fn Listener) {
	c.listeners = append(c.listeners, fn)
}

// Next advances one position, wrapping from the last deal to the first.
// With one deal the position stays put but subscribers are still notified.
func (c *Controller) Next() {
	if len(c.deals) == 0 {
		return
	}
	c.position = (c.position + 1) % len(c.deals)
	c.notify()
}

// Previous moves back one position, wrapping from the first deal to the last.
func (c *Controller) Previous() {
	if len(c.deals) == 0 {
		return
	}
	c.position = (c.position - 1 + len(c.deals)) % len(c.deals)
	c.notify()
}

// Move applies a coalesced transition direction.
func (c *Controller) Move(dir Direction) {
	switch dir {
	case DirNext:
		c.Next()
	case DirPrevious:
		c.Previous()
	}
}

// GoTo jumps straight to an index. An out-of-range index fails with
// ErrOutOfRange and leaves the position untouched; it never corrupts state.
func (c *Controller) GoTo(index int) error {
	if index < 0 || index >= len(c.deals) {
		return ErrOutOfRange
	}
	c.position = index
	c.notify()
	return nil
}

func (c *Controller) notify() {
	sel := Selection{Position: c.position, Deal: c.deals[c.position]}
	for _, fn := range c.listeners {
		fn(sel)
	}
}
