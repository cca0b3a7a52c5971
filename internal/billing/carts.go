package billing

import "sync"

// Carts tracks one draft per browser session. Drafts live in memory only;
// a dropped session starts over with an empty draft.
type Carts struct {
	mu     sync.Mutex
	drafts map[string]*Draft
}

func NewCarts() *Carts {
	return &Carts{drafts: make(map[string]*Draft)}
}

// Get returns the session's draft, creating an empty one on first use.
func (c *Carts) Get(sessionID string) *Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.drafts[sessionID]
	if !ok {
		d = NewDraft()
		c.drafts[sessionID] = d
	}
	return d
}

// Drop discards the session's draft.
func (c *Carts) Drop(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.drafts, sessionID)
}
