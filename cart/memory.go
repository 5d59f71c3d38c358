package cart

import (
	"context"
	"sync"
)

// MemoryRepository keeps carts per session id with an explicit observer list.
type MemoryRepository struct {
	mu        sync.RWMutex
	carts     map[string][]Item
	observers []Observer
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{carts: make(map[string][]Item)}
}

func (m *MemoryRepository) Read(_ context.Context, cartID string) ([]Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	items := m.carts[cartID]
	out := make([]Item, len(items))
	copy(out, items)
	return out, nil
}

func (m *MemoryRepository) Write(_ context.Context, cartID string, items []Item) error {
	m.mu.Lock()
	stored := make([]Item, len(items))
	copy(stored, items)
	m.carts[cartID] = stored
	m.mu.Unlock()

	m.notify(cartID, stored)
	return nil
}

func (m *MemoryRepository) Add(_ context.Context, cartID string, item Item) ([]Item, error) {
	m.mu.Lock()
	items := merge(m.carts[cartID], item)
	m.carts[cartID] = items
	out := make([]Item, len(items))
	copy(out, items)
	m.mu.Unlock()

	m.notify(cartID, out)
	return out, nil
}

func (m *MemoryRepository) Clear(_ context.Context, cartID string) error {
	m.mu.Lock()
	delete(m.carts, cartID)
	m.mu.Unlock()

	m.notify(cartID, nil)
	return nil
}

func (m *MemoryRepository) Subscribe(observer Observer) {
	m.mu.Lock()
	m.observers = append(m.observers, observer)
	m.mu.Unlock()
}

func (m *MemoryRepository) notify(cartID string, items []Item) {
	m.mu.RLock()
	observers := make([]Observer, len(m.observers))
	copy(observers, m.observers)
	m.mu.RUnlock()

	for _, observer := range observers {
		observer(cartID, items)
	}
}
