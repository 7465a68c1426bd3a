package cart

// Item is one cart line. The vendor id is denormalized from the product and
// the unit price is snapshotted at add time; later product edits do not move
// lines that are already in a cart.
type Item struct {
	ID        int    `json:"itemId"`
	ProductID int    `json:"productId"`
	VendorID  int    `json:"vendorId"`
	Quantity  int    `json:"quantity"`
	UnitPrice int    `json:"unitPrice"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
	AddedAt   string `json:"addedAt,omitempty"`
}

// Cart is created lazily on the first read or write for a user and survives
// checkout (it is cleared, not deleted).
type Cart struct {
	ID     int    `json:"cartId"`
	UserID int    `json:"userId"`
	Items  []Item `json:"items"`
}

// VendorGroup is the per-vendor partition of a cart, the unit of work for
// checkout order-splitting.
type VendorGroup struct {
	VendorID int    `json:"vendorId"`
	Items    []Item `json:"items"`
	Subtotal int    `json:"subtotal"`
}

// GroupByVendor partitions items by vendor in first-encounter order. Every
// item lands in exactly one group and each group's subtotal is the sum of
// unitPrice × quantity over its lines.
func GroupByVendor(items []Item) []VendorGroup {
	groups := make([]VendorGroup, 0)
	index := map[int]int{}
	for _, it := range items {
		i, ok := index[it.VendorID]
		if !ok {
			i = len(groups)
			index[it.VendorID] = i
			groups = append(groups, VendorGroup{VendorID: it.VendorID})
		}
		groups[i].Items = append(groups[i].Items, it)
		groups[i].Subtotal += it.UnitPrice * it.Quantity
	}
	return groups
}

// Total sums all line amounts regardless of vendor.
func (c Cart) Total() int {
	total := 0
	for _, it := range c.Items {
		total += it.UnitPrice * it.Quantity
	}
	return total
}

// matches reports whether the line is the merge target for an incoming
// (product, size, color) combination.
func (it Item) matches(productID int, size, color string) bool {
	return it.ProductID == productID && it.Size == size && it.Color == color
}
