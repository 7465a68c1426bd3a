package product

// Variant is one sellable size/color combination with its own stock count.
type Variant struct {
	Size  string `json:"size"`
	Color string `json:"color"`
	Stock int    `json:"stock"`
}

// Product maps to the `products` table. Prices are whole Chilean pesos.
// Stock is only ever touched by order payment confirmation, never by carts.
type Product struct {
	ID          int       `json:"productId"`
	VendorID    int       `json:"vendorId"`
	Name        string    `json:"productName"`
	Description string    `json:"productDesc,omitempty"`
	Price       int       `json:"productPrice"`
	Stock       int       `json:"stock"`
	Active      bool      `json:"active"`
	Images      []string  `json:"images,omitempty"`
	Variants    []Variant `json:"variants,omitempty"`
	CreatedAt   string    `json:"createdAt,omitempty"`
	UpdatedAt   string    `json:"updatedAt,omitempty"`
}

// FirstImage returns the image used for order line snapshots.
func (p Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// AvailableStock returns the stock backing a given size/color selection. An
// exact variant match wins; otherwise the product-level count applies.
func (p Product) AvailableStock(size, color string) int {
	for _, v := range p.Variants {
		if v.Size == size && v.Color == color {
			return v.Stock
		}
	}
	return p.Stock
}
