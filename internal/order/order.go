package order

import (
	"github.com/shopspring/decimal"

	"github.com/pipito7488/modas-betty-backend/internal/user"
)

// Shipping methods an order can carry.
const (
	MethodDelivery = "delivery"
	MethodPickup   = "pickup"
)

// DefaultCountry is applied when the customer leaves the field blank.
const DefaultCountry = "Chile"

// Item is a denormalized snapshot of a cart line taken at checkout; later
// product edits never change what the order shows.
type Item struct {
	ProductID int    `json:"productId"`
	Name      string `json:"productName"`
	UnitPrice int    `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
	Image     string `json:"image,omitempty"`
}

// Address is either the customer's delivery address or, for pickup orders,
// the vendor's store address copied from the zone.
type Address struct {
	Street  string `json:"street"`
	Commune string `json:"commune"`
	Region  string `json:"region"`
	Zip     string `json:"zip,omitempty"`
	Country string `json:"country"`
}

// VendorContact is snapshotted at order time so the payment screen keeps
// working even if the vendor later edits their profile.
type VendorContact struct {
	StoreName      string               `json:"storeName"`
	Email          string               `json:"email"`
	Phone          string               `json:"phone"`
	PaymentMethods []user.PaymentMethod `json:"paymentMethods,omitempty"`
}

// PaymentProof is the customer's uploaded bank-transfer evidence.
type PaymentProof struct {
	ImageURL   string `json:"imageUrl"`
	UploadedAt string `json:"uploadedAt"`
}

// Order is one vendor's share of a checkout. Amounts are whole pesos and
// always satisfy total = subtotal + shippingCost and
// commissionAmount + vendorNetAmount = total.
type Order struct {
	ID               int           `json:"orderId"`
	OrderNumber      string        `json:"orderNumber"`
	CustomerID       int           `json:"customerId"`
	VendorID         int           `json:"vendorId"`
	Items            []Item        `json:"items"`
	Subtotal         int           `json:"subtotal"`
	ShippingCost     int           `json:"shippingCost"`
	Total            int           `json:"total"`
	CommissionRate   float64       `json:"commissionRate"`
	CommissionAmount int           `json:"commissionAmount"`
	VendorNetAmount  int           `json:"vendorNetAmount"`
	Status           Status        `json:"status"`
	ShippingMethod   string        `json:"shippingMethod"`
	ShippingAddress  Address       `json:"shippingAddress"`
	CustomerName     string        `json:"customerName"`
	CustomerPhone    string        `json:"customerPhone"`
	CustomerEmail    string        `json:"customerEmail"`
	VendorContact    VendorContact `json:"vendorContact"`
	CancelReason     string        `json:"cancelReason,omitempty"`
	PaymentProof     *PaymentProof `json:"paymentProof,omitempty"`
	CreatedAt        string        `json:"createdAt"`
	UpdatedAt        string        `json:"updatedAt"`
}

// CommissionSplit computes the platform's cut of a total at the given
// percentage rate, rounded to whole pesos. The net is derived by subtraction
// so the two parts always sum back to the total.
func CommissionSplit(total int, rate float64) (commission, net int) {
	amount := decimal.NewFromInt(int64(total)).
		Mul(decimal.NewFromFloat(rate)).
		Div(decimal.NewFromInt(100)).
		Round(0)
	commission = int(amount.IntPart())
	return commission, total - commission
}
