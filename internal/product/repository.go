package product

import (
	"errors"
	"fmt"
	"sync"
)

var ErrNotFound = errors.New("product not found")

// StockError reports a quantity that cannot be satisfied and carries the
// count that is still available so clients can adjust.
type StockError struct {
	Available int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock: %d available", e.Available)
}

type Repository interface {
	List(activeOnly bool) []Product
	ListByVendor(vendorID int) []Product
	GetByID(id int) (Product, error)
	Create(p Product) (Product, error)
	Update(id int, p Product) (Product, error)
	Delete(id int) error
	// DecrementStock subtracts qty only while stock covers it; the guard is
	// part of the statement so concurrent confirmations cannot oversell.
	DecrementStock(id int, qty int) error
}

// InMemoryRepository is a simple in-memory implementation useful for tests
// and seeding local data.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Product
	nextID  int
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{
		storage: make([]Product, 0, len(seed)),
		nextID:  1,
	}

	maxID := 0
	for _, p := range seed {
		r.storage = append(r.storage, p)
		if p.ID > maxID {
			maxID = p.ID
		}
	}

	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) List(activeOnly bool) []Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, 0, len(r.storage))
	for _, p := range r.storage {
		if activeOnly && !p.Active {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (r *InMemoryRepository) ListByVendor(vendorID int) []Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, 0)
	for _, p := range r.storage {
		if p.VendorID == vendorID {
			out = append(out, p)
		}
	}
	return out
}

func (r *InMemoryRepository) GetByID(id int) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.storage {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) Create(p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == 0 {
		p.ID = r.nextID
		r.nextID++
	}
	r.storage = append(r.storage, p)
	return p, nil
}

func (r *InMemoryRepository) Update(id int, p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.storage {
		if existing.ID == id {
			p.ID = id
			if p.CreatedAt == "" {
				p.CreatedAt = existing.CreatedAt
			}
			r.storage[i] = p
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.storage {
		if p.ID == id {
			r.storage = append(r.storage[:i], r.storage[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) DecrementStock(id int, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.storage {
		if p.ID == id {
			if p.Stock < qty {
				return &StockError{Available: p.Stock}
			}
			p.Stock -= qty
			r.storage[i] = p
			return nil
		}
	}
	return ErrNotFound
}
