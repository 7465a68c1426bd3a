package checkout

import (
	"errors"
	"fmt"

	"github.com/pipito7488/modas-betty-backend/internal/order"
	"github.com/pipito7488/modas-betty-backend/internal/user"
)

var ErrEmptyCart = errors.New("cart is empty")

// ShippingSelection is the client's chosen option for one vendor group.
type ShippingSelection struct {
	ZoneID   int  `json:"zoneId"`
	Selected bool `json:"selected"`
}

// Request is the full checkout payload: one shipping selection per vendor in
// the cart plus the customer's contact and delivery address.
type Request struct {
	ShippingData    map[int]ShippingSelection `json:"shippingData"`
	CustomerAddress order.Address             `json:"customerAddress"`
	CustomerPhone   string                    `json:"customerPhone"`
}

// VendorSummary is what the payment-instructions screen needs per vendor.
type VendorSummary struct {
	VendorID       int                  `json:"vendorId"`
	StoreName      string               `json:"storeName"`
	PaymentMethods []user.PaymentMethod `json:"paymentMethods,omitempty"`
}

// OrderSummary describes one created order back to the customer.
type OrderSummary struct {
	OrderID     int           `json:"orderId"`
	OrderNumber string        `json:"orderNumber"`
	Vendor      VendorSummary `json:"vendor"`
	Total       int           `json:"total"`
	Items       []order.Item  `json:"items"`
}

// MissingShippingError names the vendor whose group has no usable shipping
// selection.
type MissingShippingError struct {
	VendorID int
}

func (e *MissingShippingError) Error() string {
	return fmt.Sprintf("missing shipping selection for vendor %d", e.VendorID)
}

// VendorNotFoundError names a vendor referenced by the cart that no longer
// exists (or lost the vendor role).
type VendorNotFoundError struct {
	VendorID int
}

func (e *VendorNotFoundError) Error() string {
	return fmt.Sprintf("vendor %d not found", e.VendorID)
}

// InvalidZoneError flags a stale or forged zone id: missing, disabled, or
// owned by a different vendor.
type InvalidZoneError struct {
	VendorID int
	ZoneID   int
}

func (e *InvalidZoneError) Error() string {
	return fmt.Sprintf("shipping zone %d is not valid for vendor %d", e.ZoneID, e.VendorID)
}
