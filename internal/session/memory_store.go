package session

import (
	"context"
	"sync"
	"time"
)

type memoryCart struct {
	items   map[int64]int
	expires time.Time
}

// MemoryStore is the single-process fallback used when no Redis address is
// configured. Carts expire ttl after their last write.
type MemoryStore struct {
	mu    sync.Mutex
	carts map[string]*memoryCart
	ttl   time.Duration
	now   func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{carts: make(map[string]*memoryCart), ttl: ttl, now: time.Now}
}

// cart returns the live cart for sessionID, dropping it if expired.
// Caller holds s.mu.
func (s *MemoryStore) cart(sessionID string, create bool) *memoryCart {
	c, ok := s.carts[sessionID]
	if ok && s.ttl > 0 && s.now().After(c.expires) {
		delete(s.carts, sessionID)
		ok = false
	}
	if !ok {
		if !create {
			return nil
		}
		c = &memoryCart{items: make(map[int64]int)}
		s.carts[sessionID] = c
	}
	if create {
		c.expires = s.now().Add(s.ttl)
	}
	return c
}

func (s *MemoryStore) Items(_ context.Context, sessionID string) (map[int64]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[int64]int)
	if c := s.cart(sessionID, false); c != nil {
		for k, v := range c.items {
			out[k] = v
		}
	}
	return out, nil
}

func (s *MemoryStore) Incr(_ context.Context, sessionID string, productID int64, delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(sessionID, true)
	qty := c.items[productID] + delta
	if qty <= 0 {
		delete(c.items, productID)
		return 0, nil
	}
	c.items[productID] = qty
	return qty, nil
}

func (s *MemoryStore) Set(_ context.Context, sessionID string, productID int64, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(sessionID, true)
	if qty <= 0 {
		delete(c.items, productID)
		return nil
	}
	c.items[productID] = qty
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, sessionID)
	return nil
}
