package order

import "testing"

func TestCommissionSplit(t *testing.T) {
	tests := []struct {
		total          int
		rate           float64
		wantCommission int
		wantNet        int
	}{
		{23000, 10, 2300, 20700},
		{15000, 15, 2250, 12750},
		{9990, 12.5, 1249, 8741},
		{100, 33.33, 33, 67},
		{1, 50, 1, 0},
		{0, 10, 0, 0},
		{25000, 0, 0, 25000},
	}

	for _, tt := range tests {
		commission, net := CommissionSplit(tt.total, tt.rate)
		if commission != tt.wantCommission || net != tt.wantNet {
			t.Fatalf("CommissionSplit(%d, %v) = (%d, %d), want (%d, %d)",
				tt.total, tt.rate, commission, net, tt.wantCommission, tt.wantNet)
		}
		if commission+net != tt.total {
			t.Fatalf("split of %d does not add up: %d + %d", tt.total, commission, net)
		}
	}
}
