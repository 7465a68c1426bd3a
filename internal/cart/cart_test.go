package cart

import "testing"

func TestGroupByVendorPartition(t *testing.T) {
	items := []Item{
		{ID: 1, ProductID: 10, VendorID: 3, Quantity: 2, UnitPrice: 10000},
		{ID: 2, ProductID: 20, VendorID: 7, Quantity: 1, UnitPrice: 15000},
		{ID: 3, ProductID: 11, VendorID: 3, Quantity: 1, UnitPrice: 5000, Size: "M"},
	}

	groups := GroupByVendor(items)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}

	// first-encounter order: vendor 3 before vendor 7
	if groups[0].VendorID != 3 || groups[1].VendorID != 7 {
		t.Fatalf("unexpected group order: %d, %d", groups[0].VendorID, groups[1].VendorID)
	}

	if len(groups[0].Items) != 2 || len(groups[1].Items) != 1 {
		t.Fatalf("unexpected group sizes: %d, %d", len(groups[0].Items), len(groups[1].Items))
	}

	if groups[0].Subtotal != 25000 {
		t.Fatalf("vendor 3 subtotal = %d, want 25000", groups[0].Subtotal)
	}
	if groups[1].Subtotal != 15000 {
		t.Fatalf("vendor 7 subtotal = %d, want 15000", groups[1].Subtotal)
	}

	// every item lands in exactly one group
	seen := map[int]bool{}
	total := 0
	for _, g := range groups {
		for _, it := range g.Items {
			if seen[it.ID] {
				t.Fatalf("item %d appears in more than one group", it.ID)
			}
			seen[it.ID] = true
		}
		total += g.Subtotal
	}
	if len(seen) != len(items) {
		t.Fatalf("grouped %d items, want %d", len(seen), len(items))
	}

	c := Cart{Items: items}
	if total != c.Total() {
		t.Fatalf("group subtotals sum to %d, cart total is %d", total, c.Total())
	}
}

func TestGroupByVendorEmpty(t *testing.T) {
	groups := GroupByVendor(nil)
	if len(groups) != 0 {
		t.Fatalf("expected no groups for empty cart, got %d", len(groups))
	}
}

func TestGroupByVendorSingleVendor(t *testing.T) {
	items := []Item{
		{ID: 1, ProductID: 10, VendorID: 5, Quantity: 1, UnitPrice: 9990},
		{ID: 2, ProductID: 11, VendorID: 5, Quantity: 3, UnitPrice: 1000},
	}

	groups := GroupByVendor(items)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if groups[0].Subtotal != 12990 {
		t.Fatalf("subtotal = %d, want 12990", groups[0].Subtotal)
	}
}
