package order

import (
	"errors"
	"time"

	"github.com/pipito7488/modas-betty-backend/internal/product"
	"github.com/pipito7488/modas-betty-backend/internal/user"
)

var (
	ErrForbidden       = errors.New("not allowed to act on this order")
	ErrReasonRequired  = errors.New("cancellation reason is required")
	ErrProofSubmitted  = errors.New("payment proof already submitted")
	ErrAmountsMismatch = errors.New("order amounts do not add up")
)

// ServiceInterface is the surface the checkout pipeline consumes.
type ServiceInterface interface {
	Create(ord Order) (Order, error)
}

// Service owns the order lifecycle. Stock is decremented here, at payment
// confirmation, never earlier.
type Service struct {
	repo     Repository
	products product.ServiceInterface
}

func NewService(repo Repository, products product.ServiceInterface) *Service {
	return &Service{repo: repo, products: products}
}

// Create persists a new order after re-checking the money invariants; a
// caller that computed them wrong fails loudly instead of storing a split
// that does not add up.
func (s *Service) Create(ord Order) (Order, error) {
	if ord.Total != ord.Subtotal+ord.ShippingCost {
		return Order{}, ErrAmountsMismatch
	}
	if ord.CommissionAmount+ord.VendorNetAmount != ord.Total {
		return Order{}, ErrAmountsMismatch
	}
	if ord.Status == "" {
		ord.Status = StatusPendingPayment
	}
	return s.repo.Create(ord)
}

// GetForActor loads an order and checks the caller may see it: the customer
// who placed it, the vendor who sells it, or an admin.
func (s *Service) GetForActor(orderID, actorID int, role string) (Order, error) {
	ord, err := s.repo.GetByID(orderID)
	if err != nil {
		return Order{}, err
	}
	if !canAccess(ord, actorID, role) {
		return Order{}, ErrForbidden
	}
	return ord, nil
}

// ListForActor returns the caller's slice of the order book: own purchases
// for customers, own sales for vendors, everything for admins.
func (s *Service) ListForActor(actorID int, role string) ([]Order, error) {
	switch role {
	case user.RoleAdmin:
		return s.repo.List()
	case user.RoleVendor:
		return s.repo.ListByVendor(actorID)
	default:
		return s.repo.ListByCustomer(actorID)
	}
}

// SubmitPaymentProof records the customer's transfer evidence. It is a
// one-time action available only while the order still waits for payment.
func (s *Service) SubmitPaymentProof(orderID, customerID int, imageURL string) (Order, error) {
	ord, err := s.repo.GetByID(orderID)
	if err != nil {
		return Order{}, err
	}
	if ord.CustomerID != customerID {
		return Order{}, ErrForbidden
	}
	if ord.PaymentProof != nil {
		return Order{}, ErrProofSubmitted
	}
	if !ord.Status.CanTransitionTo(StatusPaymentSubmitted) {
		return Order{}, ErrInvalidTransition
	}

	now := time.Now().UTC().Format(time.RFC3339)
	proof := PaymentProof{ImageURL: imageURL, UploadedAt: now}
	if err := s.repo.SetPaymentProof(orderID, proof, StatusPaymentSubmitted, now); err != nil {
		return Order{}, err
	}
	return s.repo.GetByID(orderID)
}

// ConfirmPayment moves the order to payment_confirmed and decrements stock
// for every line. A line that no longer has enough stock aborts the
// confirmation before the status changes.
func (s *Service) ConfirmPayment(orderID, actorID int, role string) (Order, error) {
	ord, err := s.getForVendorAction(orderID, actorID, role)
	if err != nil {
		return Order{}, err
	}
	if !ord.Status.CanTransitionTo(StatusPaymentConfirmed) {
		return Order{}, ErrInvalidTransition
	}

	for _, it := range ord.Items {
		if err := s.products.DecrementStock(it.ProductID, it.Quantity); err != nil {
			return Order{}, err
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if err := s.repo.UpdateStatus(orderID, StatusPaymentConfirmed, "", now); err != nil {
		return Order{}, err
	}
	return s.repo.GetByID(orderID)
}

// UpdateStatus applies a vendor/admin driven transition through the table.
// Payment confirmation and cancellation have dedicated entry points because
// they carry side effects; this handles the plain progress steps.
func (s *Service) UpdateStatus(orderID, actorID int, role string, next Status) (Order, error) {
	if !next.Valid() {
		return Order{}, ErrInvalidTransition
	}
	if next == StatusPaymentConfirmed || next == StatusCancelled {
		return Order{}, ErrInvalidTransition
	}

	ord, err := s.getForVendorAction(orderID, actorID, role)
	if err != nil {
		return Order{}, err
	}
	if !ord.Status.CanTransitionTo(next) {
		return Order{}, ErrInvalidTransition
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if err := s.repo.UpdateStatus(orderID, next, "", now); err != nil {
		return Order{}, err
	}
	return s.repo.GetByID(orderID)
}

// Cancel requires a free-text reason and honors the transition table, so
// shipped and delivered orders cannot be cancelled.
func (s *Service) Cancel(orderID, actorID int, role string, reason string) (Order, error) {
	if reason == "" {
		return Order{}, ErrReasonRequired
	}

	ord, err := s.getForVendorAction(orderID, actorID, role)
	if err != nil {
		return Order{}, err
	}
	if !ord.Status.CanTransitionTo(StatusCancelled) {
		return Order{}, ErrInvalidTransition
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if err := s.repo.UpdateStatus(orderID, StatusCancelled, reason, now); err != nil {
		return Order{}, err
	}
	return s.repo.GetByID(orderID)
}

func (s *Service) getForVendorAction(orderID, actorID int, role string) (Order, error) {
	ord, err := s.repo.GetByID(orderID)
	if err != nil {
		return Order{}, err
	}
	if role == user.RoleAdmin {
		return ord, nil
	}
	if role == user.RoleVendor && ord.VendorID == actorID {
		return ord, nil
	}
	return Order{}, ErrForbidden
}

func canAccess(ord Order, actorID int, role string) bool {
	switch role {
	case user.RoleAdmin:
		return true
	case user.RoleVendor:
		return ord.VendorID == actorID
	default:
		return ord.CustomerID == actorID
	}
}
