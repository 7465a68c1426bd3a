package shipping

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("shipping zone not found")

type Repository interface {
	ListByVendor(vendorID int) []Zone
	GetByID(id int) (Zone, error)
	Create(z Zone) (Zone, error)
	Update(id int, z Zone) (Zone, error)
	Delete(id int) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu     sync.RWMutex
	zones  []Zone
	nextID int
}

func NewInMemoryRepository(seed []Zone) *InMemoryRepository {
	r := &InMemoryRepository{
		zones:  make([]Zone, 0, len(seed)),
		nextID: 1,
	}

	maxID := 0
	for _, z := range seed {
		r.zones = append(r.zones, z)
		if z.ID > maxID {
			maxID = z.ID
		}
	}

	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) ListByVendor(vendorID int) []Zone {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Zone, 0)
	for _, z := range r.zones {
		if z.VendorID == vendorID {
			out = append(out, z)
		}
	}
	return out
}

func (r *InMemoryRepository) GetByID(id int) (Zone, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, z := range r.zones {
		if z.ID == id {
			return z, nil
		}
	}
	return Zone{}, ErrNotFound
}

func (r *InMemoryRepository) Create(z Zone) (Zone, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if z.ID == 0 {
		z.ID = r.nextID
		r.nextID++
	}
	r.zones = append(r.zones, z)
	return z, nil
}

func (r *InMemoryRepository) Update(id int, z Zone) (Zone, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.zones {
		if existing.ID == id {
			z.ID = id
			r.zones[i] = z
			return z, nil
		}
	}
	return Zone{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, z := range r.zones {
		if z.ID == id {
			r.zones = append(r.zones[:i], r.zones[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
