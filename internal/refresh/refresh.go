// Package refresh re-selects the deal catalogue in the background and
// feeds it to the UI.
package refresh

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jkariuki/dealdrop/internal/logging"
	"github.com/jkariuki/dealdrop/internal/store"
	"github.com/jkariuki/dealdrop/internal/ui/msgs"
)

// Coordinator periodically reloads deals from the store and delivers them
// to the running program. Uses context cancellation as the ONLY stop
// mechanism.
type Coordinator struct {
	store    *store.Store
	interval time.Duration
	wg       sync.WaitGroup
}

// NewCoordinator creates a coordinator reloading every interval.
func NewCoordinator(st *store.Store, interval time.Duration) *Coordinator {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Coordinator{store: st, interval: interval}
}

// Start begins background reloading. Performs an initial load immediately,
// then one per interval. Call with a cancellable context.
func (c *Coordinator) Start(ctx context.Context, program *tea.Program) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		c.load(program)

		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.load(program)
			}
		}
	}()
}

// Wait blocks until the background goroutine exits.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

func (c *Coordinator) load(program *tea.Program) {
	deals, err := c.store.ListDeals()
	if err != nil {
		logging.Error("catalogue reload failed", "error", err)
		program.Send(msgs.DealsLoaded{Err: err})
		return
	}
	logging.Debug("catalogue reloaded", "deals", len(deals))
	program.Send(msgs.DealsLoaded{Deals: deals})
}
