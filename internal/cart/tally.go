// Package cart holds the process-local cart tally. Nothing here is
// persisted; checkout happens outside this application.
package cart

// Tally counts items requested via quantity selection on the detail view.
type Tally struct {
	items int
}

// Add records a quantity selection. Non-positive quantities are ignored.
func (t *Tally) Add(quantity int) {
	if quantity <= 0 {
		return
	}
	t.items += quantity
}

// Items returns the running total.
func (t *Tally) Items() int { return t.items }
