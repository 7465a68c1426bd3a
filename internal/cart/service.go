package cart

import (
	"errors"
	"time"

	"github.com/pipito7488/modas-betty-backend/internal/product"
)

var (
	ErrNotFound        = errors.New("product not found or inactive")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// ServiceInterface is the surface the checkout pipeline consumes.
type ServiceInterface interface {
	Get(userID int) (Cart, error)
	Clear(userID int) error
}

type Service struct {
	repo     Repository
	products product.ServiceInterface
}

func NewService(repo Repository, products product.ServiceInterface) *Service {
	return &Service{repo: repo, products: products}
}

// Get returns the user's cart, creating an empty one on first call.
func (s *Service) Get(userID int) (Cart, error) {
	return s.repo.GetByUser(userID)
}

// Add puts quantity units of a product into the cart. An existing line with
// the same (product, size, color) is incremented instead of duplicated; the
// combined quantity is re-validated against the product's stock. The failure
// paths leave the cart untouched.
func (s *Service) Add(userID, productID, quantity int, size, color string) (Cart, error) {
	if quantity < 1 {
		return Cart{}, ErrInvalidQuantity
	}

	p, err := s.products.GetByID(productID)
	if err != nil || !p.Active {
		return Cart{}, ErrNotFound
	}

	c, err := s.repo.GetByUser(userID)
	if err != nil {
		return Cart{}, err
	}

	available := p.AvailableStock(size, color)
	for _, it := range c.Items {
		if it.matches(productID, size, color) {
			combined := it.Quantity + quantity
			if combined > available {
				return Cart{}, &product.StockError{Available: available}
			}
			if err := s.repo.UpdateItemQuantity(c.ID, it.ID, combined); err != nil {
				return Cart{}, err
			}
			return s.repo.GetByUser(userID)
		}
	}

	if quantity > available {
		return Cart{}, &product.StockError{Available: available}
	}

	_, err = s.repo.InsertItem(c.ID, Item{
		ProductID: productID,
		VendorID:  p.VendorID,
		Quantity:  quantity,
		UnitPrice: p.Price,
		Size:      size,
		Color:     color,
		AddedAt:   time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return Cart{}, err
	}
	return s.repo.GetByUser(userID)
}

// UpdateQuantity sets a line to an absolute quantity, re-validating stock.
func (s *Service) UpdateQuantity(userID, itemID, quantity int) (Cart, error) {
	if quantity < 1 {
		return Cart{}, ErrInvalidQuantity
	}

	c, err := s.repo.GetByUser(userID)
	if err != nil {
		return Cart{}, err
	}

	for _, it := range c.Items {
		if it.ID != itemID {
			continue
		}
		p, err := s.products.GetByID(it.ProductID)
		if err != nil {
			return Cart{}, ErrNotFound
		}
		if available := p.AvailableStock(it.Size, it.Color); quantity > available {
			return Cart{}, &product.StockError{Available: available}
		}
		if err := s.repo.UpdateItemQuantity(c.ID, itemID, quantity); err != nil {
			return Cart{}, err
		}
		return s.repo.GetByUser(userID)
	}
	return Cart{}, ErrItemNotFound
}

func (s *Service) Remove(userID, itemID int) (Cart, error) {
	c, err := s.repo.GetByUser(userID)
	if err != nil {
		return Cart{}, err
	}
	if err := s.repo.RemoveItem(c.ID, itemID); err != nil {
		return Cart{}, err
	}
	return s.repo.GetByUser(userID)
}

// Clear empties the item list without deleting the cart record.
func (s *Service) Clear(userID int) error {
	c, err := s.repo.GetByUser(userID)
	if err != nil {
		return err
	}
	return s.repo.Clear(c.ID)
}
