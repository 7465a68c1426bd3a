package user

// Role values carried on the user row and inside the JWT.
const (
	RoleCustomer = "cliente"
	RoleVendor   = "vendedor"
	RoleAdmin    = "admin"
)

// PaymentMethod is one bank-transfer destination a vendor accepts. Customers
// pay each vendor directly, so these are shown verbatim on the payment screen.
type PaymentMethod struct {
	Bank          string `json:"bank"`
	AccountType   string `json:"accountType"`
	AccountNumber string `json:"accountNumber"`
	HolderName    string `json:"holderName"`
	RUT           string `json:"rut,omitempty"`
}

type User struct {
	ID        int    `json:"userId"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`

	// vendor-only fields
	StoreName      string          `json:"storeName,omitempty"`
	CommissionRate float64         `json:"commissionRate,omitempty"`
	PaymentMethods []PaymentMethod `json:"paymentMethods,omitempty"`

	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// IsVendor reports whether the user can own products, zones and orders.
func (u User) IsVendor() bool {
	return u.Role == RoleVendor
}
