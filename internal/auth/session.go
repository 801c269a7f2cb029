package auth

import "sync"

// ContextState is the lifecycle phase of a SessionContext.
type ContextState int

const (
	ContextInit ContextState = iota
	ContextSubscribed
	ContextDisposed
)

// SessionContext carries "who is signed in" through the UI explicitly.
// It is constructed once at startup, subscribed to the provider for its
// lifetime, and disposed on shutdown; views receive it by injection rather
// than reaching for ambient state. Provider broadcasts arrive from command
// goroutines while the UI turn reads, so the session is guarded by a mutex.
type SessionContext struct {
	provider    Provider
	unsubscribe func()

	mu      sync.RWMutex
	state   ContextState
	session *Session
}

// NewSessionContext creates a context in the Init state.
func NewSessionContext(p Provider) *SessionContext {
	return &SessionContext{provider: p}
}

// Subscribe starts tracking the provider's session. Idempotent.
func (c *SessionContext) Subscribe() {
	c.mu.Lock()
	if c.state != ContextInit {
		c.mu.Unlock()
		return
	}
	c.state = ContextSubscribed
	c.mu.Unlock()

	// Provider calls happen without mu held: the provider takes its own
	// lock and the change callback takes ours.
	if s, ok := c.provider.Session(); ok {
		c.mu.Lock()
		c.session = &s
		c.mu.Unlock()
	}
	c.unsubscribe = c.provider.OnSessionChange(func(s *Session) {
		c.mu.Lock()
		c.session = s
		c.mu.Unlock()
	})
}

// Dispose stops tracking. The context is unusable afterwards.
func (c *SessionContext) Dispose() {
	c.mu.Lock()
	unsub := c.unsubscribe
	c.unsubscribe = nil
	c.session = nil
	c.state = ContextDisposed
	c.mu.Unlock()

	// Unsubscribing takes the provider's lock, so it happens outside ours.
	if unsub != nil {
		unsub()
	}
}

// State returns the lifecycle phase.
func (c *SessionContext) State() ContextState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// SignedIn reports whether a user is present.
func (c *SessionContext) SignedIn() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state == ContextSubscribed && c.session != nil
}

// User returns the signed-in user's id and email for display.
func (c *SessionContext) User() (id, email string, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state != ContextSubscribed || c.session == nil {
		return "", "", false
	}
	return c.session.UserID, c.session.Email, true
}

// Provider exposes the underlying identity provider for the auth view.
func (c *SessionContext) Provider() Provider { return c.provider }
