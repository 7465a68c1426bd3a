package order

import (
	"errors"
	"sync"
)

var (
	ErrNotFound = errors.New("order not found")
)

type Repository interface {
	Create(ord Order) (Order, error)
	GetByID(id int) (Order, error)
	ListByCustomer(customerID int) ([]Order, error)
	ListByVendor(vendorID int) ([]Order, error)
	List() ([]Order, error)
	UpdateStatus(id int, status Status, reason string, updatedAt string) error
	SetPaymentProof(id int, proof PaymentProof, status Status, updatedAt string) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu     sync.RWMutex
	orders []Order
	nextID int
}

func NewInMemoryRepository(seed []Order) *InMemoryRepository {
	r := &InMemoryRepository{
		orders: make([]Order, 0, len(seed)),
		nextID: 1,
	}

	maxID := 0
	for _, ord := range seed {
		r.orders = append(r.orders, ord)
		if ord.ID > maxID {
			maxID = ord.ID
		}
	}

	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) Create(ord Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ord.ID == 0 {
		ord.ID = r.nextID
		r.nextID++
	}
	r.orders = append(r.orders, ord)
	return ord, nil
}

func (r *InMemoryRepository) GetByID(id int) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ord := range r.orders {
		if ord.ID == id {
			return ord, nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) ListByCustomer(customerID int) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Order, 0)
	for _, ord := range r.orders {
		if ord.CustomerID == customerID {
			out = append(out, ord)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) ListByVendor(vendorID int) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Order, 0)
	for _, ord := range r.orders {
		if ord.VendorID == vendorID {
			out = append(out, ord)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) List() ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Order, len(r.orders))
	copy(out, r.orders)
	return out, nil
}

func (r *InMemoryRepository) UpdateStatus(id int, status Status, reason string, updatedAt string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, ord := range r.orders {
		if ord.ID == id {
			r.orders[i].Status = status
			if reason != "" {
				r.orders[i].CancelReason = reason
			}
			r.orders[i].UpdatedAt = updatedAt
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) SetPaymentProof(id int, proof PaymentProof, status Status, updatedAt string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, ord := range r.orders {
		if ord.ID == id {
			p := proof
			r.orders[i].PaymentProof = &p
			r.orders[i].Status = status
			r.orders[i].UpdatedAt = updatedAt
			return nil
		}
	}
	return ErrNotFound
}
