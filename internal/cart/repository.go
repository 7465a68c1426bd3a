package cart

import (
	"errors"
	"sync"
)

var (
	ErrItemNotFound = errors.New("cart item not found")
)

// Repository stores carts and their lines. GetByUser creates the cart row on
// first use; the merge-on-add policy lives in the service, the repository
// only persists lines.
type Repository interface {
	GetByUser(userID int) (Cart, error)
	InsertItem(cartID int, item Item) (Item, error)
	UpdateItemQuantity(cartID, itemID, quantity int) error
	RemoveItem(cartID, itemID int) error
	Clear(cartID int) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu         sync.RWMutex
	carts      []Cart
	nextCartID int
	nextItemID int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextCartID: 1, nextItemID: 1}
}

func (r *InMemoryRepository) GetByUser(userID int) (Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.carts {
		if c.UserID == userID {
			return copyCart(c), nil
		}
	}

	c := Cart{ID: r.nextCartID, UserID: userID, Items: []Item{}}
	r.nextCartID++
	r.carts = append(r.carts, c)
	return copyCart(c), nil
}

func (r *InMemoryRepository) InsertItem(cartID int, item Item) (Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, c := range r.carts {
		if c.ID == cartID {
			item.ID = r.nextItemID
			r.nextItemID++
			r.carts[i].Items = append(r.carts[i].Items, item)
			return item, nil
		}
	}
	return Item{}, ErrItemNotFound
}

func (r *InMemoryRepository) UpdateItemQuantity(cartID, itemID, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, c := range r.carts {
		if c.ID != cartID {
			continue
		}
		for j, it := range c.Items {
			if it.ID == itemID {
				r.carts[i].Items[j].Quantity = quantity
				return nil
			}
		}
	}
	return ErrItemNotFound
}

func (r *InMemoryRepository) RemoveItem(cartID, itemID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, c := range r.carts {
		if c.ID != cartID {
			continue
		}
		for j, it := range c.Items {
			if it.ID == itemID {
				r.carts[i].Items = append(c.Items[:j], c.Items[j+1:]...)
				return nil
			}
		}
	}
	return ErrItemNotFound
}

func (r *InMemoryRepository) Clear(cartID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, c := range r.carts {
		if c.ID == cartID {
			r.carts[i].Items = []Item{}
			return nil
		}
	}
	return nil
}

func copyCart(c Cart) Cart {
	items := make([]Item, len(c.Items))
	copy(items, c.Items)
	c.Items = items
	return c
}
