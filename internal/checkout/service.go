package checkout

import (
	"time"

	"github.com/google/uuid"

	"github.com/pipito7488/modas-betty-backend/internal/cart"
	"github.com/pipito7488/modas-betty-backend/internal/order"
	"github.com/pipito7488/modas-betty-backend/internal/product"
	"github.com/pipito7488/modas-betty-backend/internal/shipping"
	"github.com/pipito7488/modas-betty-backend/internal/user"
)

// Service turns one multi-vendor cart into N single-vendor orders. Every
// vendor group is validated before the first order is written, so a failing
// group means the call creates nothing at all.
type Service struct {
	carts    cart.ServiceInterface
	products product.ServiceInterface
	users    user.ServiceInterface
	zones    shipping.ServiceInterface
	orders   order.ServiceInterface
}

func NewService(carts cart.ServiceInterface, products product.ServiceInterface,
	users user.ServiceInterface, zones shipping.ServiceInterface, orders order.ServiceInterface) *Service {
	return &Service{carts: carts, products: products, users: users, zones: zones, orders: orders}
}

// plan is one fully validated vendor group, ready to become an order.
type plan struct {
	group    cart.VendorGroup
	vendor   user.User
	zone     shipping.Zone
	products map[int]product.Product
}

// Checkout runs the order-splitting pipeline for the given customer.
func (s *Service) Checkout(customerID int, req Request) ([]OrderSummary, error) {
	crt, err := s.carts.Get(customerID)
	if err != nil {
		return nil, err
	}
	if len(crt.Items) == 0 {
		return nil, ErrEmptyCart
	}

	customer, err := s.users.GetByID(customerID)
	if err != nil {
		return nil, err
	}

	groups := cart.GroupByVendor(crt.Items)

	// validation pass: nothing is persisted until every group checks out
	plans := make([]plan, 0, len(groups))
	for _, g := range groups {
		p, err := s.validateGroup(g, req)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}

	address := req.CustomerAddress
	if address.Country == "" {
		address.Country = order.DefaultCountry
	}

	now := time.Now().UTC().Format(time.RFC3339)
	summaries := make([]OrderSummary, 0, len(plans))
	for _, p := range plans {
		ord := s.buildOrder(p, customer, address, req.CustomerPhone, now)
		created, err := s.orders.Create(ord)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, OrderSummary{
			OrderID:     created.ID,
			OrderNumber: created.OrderNumber,
			Vendor: VendorSummary{
				VendorID:       p.vendor.ID,
				StoreName:      p.vendor.StoreName,
				PaymentMethods: p.vendor.PaymentMethods,
			},
			Total: created.Total,
			Items: created.Items,
		})
	}

	// the cart is cleared only when every order was created
	if err := s.carts.Clear(customerID); err != nil {
		return nil, err
	}
	return summaries, nil
}

func (s *Service) validateGroup(g cart.VendorGroup, req Request) (plan, error) {
	selection, ok := req.ShippingData[g.VendorID]
	if !ok || !selection.Selected {
		return plan{}, &MissingShippingError{VendorID: g.VendorID}
	}

	vendor, err := s.users.GetVendor(g.VendorID)
	if err != nil {
		return plan{}, &VendorNotFoundError{VendorID: g.VendorID}
	}

	zone, err := s.zones.ActiveZone(g.VendorID, selection.ZoneID)
	if err != nil {
		return plan{}, &InvalidZoneError{VendorID: g.VendorID, ZoneID: selection.ZoneID}
	}

	resolved := make(map[int]product.Product, len(g.Items))
	for _, it := range g.Items {
		p, err := s.products.GetByID(it.ProductID)
		if err != nil || !p.Active {
			return plan{}, cart.ErrNotFound
		}
		resolved[it.ProductID] = p
	}

	return plan{group: g, vendor: vendor, zone: zone, products: resolved}, nil
}

func (s *Service) buildOrder(p plan, customer user.User, deliveryAddress order.Address, phone, now string) order.Order {
	items := make([]order.Item, 0, len(p.group.Items))
	for _, it := range p.group.Items {
		prod := p.products[it.ProductID]
		items = append(items, order.Item{
			ProductID: it.ProductID,
			Name:      prod.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			Size:      it.Size,
			Color:     it.Color,
			Image:     prod.FirstImage(),
		})
	}

	subtotal := p.group.Subtotal
	total := subtotal + p.zone.Cost
	commission, net := order.CommissionSplit(total, p.vendor.CommissionRate)

	method := order.MethodDelivery
	address := deliveryAddress
	if p.zone.IsPickup() {
		method = order.MethodPickup
		address = order.Address{
			Street:  p.zone.Street,
			Commune: p.zone.Commune,
			Region:  p.zone.Region,
			Country: order.DefaultCountry,
		}
	}

	return order.Order{
		OrderNumber:      uuid.NewString(),
		CustomerID:       customer.ID,
		VendorID:         p.vendor.ID,
		Items:            items,
		Subtotal:         subtotal,
		ShippingCost:     p.zone.Cost,
		Total:            total,
		CommissionRate:   p.vendor.CommissionRate,
		CommissionAmount: commission,
		VendorNetAmount:  net,
		Status:           order.StatusPendingPayment,
		ShippingMethod:   method,
		ShippingAddress:  address,
		CustomerName:     customer.FirstName + " " + customer.LastName,
		CustomerPhone:    phone,
		CustomerEmail:    customer.Email,
		VendorContact: order.VendorContact{
			StoreName:      p.vendor.StoreName,
			Email:          p.vendor.Email,
			Phone:          p.vendor.Phone,
			PaymentMethods: p.vendor.PaymentMethods,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
