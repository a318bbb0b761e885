package item

import (
	"sort"
	"sync"
	"time"
)

// Mock is an in-memory store used in tests. It mirrors the Postgres store's
// semantics, including the combined id-and-owner lookup predicate.
type Mock struct {
	mu     sync.Mutex
	items  map[int]*Item
	nextID int
}

// NewMock creates an empty in-memory item store
func NewMock() *Mock {
	return &Mock{items: make(map[int]*Item), nextID: 1}
}

func (m *Mock) ListByOwner(ownerID int) ([]*Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var items []*Item
	for _, it := range m.items {
		if it.UserID == ownerID {
			cp := *it
			items = append(items, &cp)
		}
	}
	sort.Slice(items, func(a, b int) bool {
		if !items[a].CreatedAt.Equal(items[b].CreatedAt) {
			return items[a].CreatedAt.After(items[b].CreatedAt)
		}
		return items[a].ID > items[b].ID
	})
	return items, nil
}

func (m *Mock) Create(ownerID int, f Fields) (*Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	it := &Item{
		ID:        m.nextID,
		UserID:    ownerID,
		Name:      f.Name,
		Category:  f.Category,
		Price:     f.Price,
		Quantity:  f.Quantity,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.nextID++
	m.items[it.ID] = it

	cp := *it
	return &cp, nil
}

func (m *Mock) Update(ownerID, id int, f Fields) (*Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	it, ok := m.items[id]
	if !ok || it.UserID != ownerID {
		return nil, ErrItemNotFound
	}
	it.Name = f.Name
	it.Category = f.Category
	it.Price = f.Price
	it.Quantity = f.Quantity
	it.UpdatedAt = time.Now()

	cp := *it
	return &cp, nil
}

func (m *Mock) Delete(ownerID, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	it, ok := m.items[id]
	if !ok || it.UserID != ownerID {
		return ErrItemNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *Mock) Toggle(ownerID, id int) (*Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	it, ok := m.items[id]
	if !ok || it.UserID != ownerID {
		return nil, ErrItemNotFound
	}
	if it.Status == StatusActive {
		it.Status = StatusCompleted
	} else {
		it.Status = StatusActive
	}
	it.UpdatedAt = time.Now()

	cp := *it
	return &cp, nil
}

func (m *Mock) DeleteCompleted(ownerID int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for id, it := range m.items {
		if it.UserID == ownerID && it.Status == StatusCompleted {
			delete(m.items, id)
			count++
		}
	}
	return count, nil
}

func (m *Mock) DeleteAll(ownerID int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for id, it := range m.items {
		if it.UserID == ownerID {
			delete(m.items, id)
			count++
		}
	}
	return count, nil
}
