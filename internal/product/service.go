package product

import "errors"

var ErrInvalidPrice = errors.New("price must be non-negative")

// ServiceInterface is the surface the cart, order and checkout packages use.
type ServiceInterface interface {
	GetByID(id int) (Product, error)
	DecrementStock(id int, qty int) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(activeOnly bool) []Product {
	return s.repo.List(activeOnly)
}

func (s *Service) ListByVendor(vendorID int) []Product {
	return s.repo.ListByVendor(vendorID)
}

func (s *Service) GetByID(id int) (Product, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Create(p Product) (Product, error) {
	if p.Price < 0 {
		return Product{}, ErrInvalidPrice
	}
	return s.repo.Create(p)
}

func (s *Service) Update(id int, p Product) (Product, error) {
	if p.Price < 0 {
		return Product{}, ErrInvalidPrice
	}
	return s.repo.Update(id, p)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}

// DecrementStock is called by order payment confirmation only.
func (s *Service) DecrementStock(id int, qty int) error {
	if qty <= 0 {
		return nil
	}
	return s.repo.DecrementStock(id, qty)
}
