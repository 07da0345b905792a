package pricing

import (
	"testing"

	"github.com/quotecraft/quotecraft-api/internal/domain/enum"
	"github.com/quotecraft/quotecraft-api/pkg/apperror"
)

func TestRollup(t *testing.T) {
	rates := Rates{USDToILS: 3.70, EURToILS: 4.00}

	tests := []struct {
		name           string
		members        []Member
		target         enum.Currency
		expectCost     float64
		expectCount    int
		expectComplete bool
	}{
		{
			name: "two components",
			members: []Member{
				{Cost: 100, Currency: enum.CurrencyUSD, Quantity: 2},
				{Cost: 50, Currency: enum.CurrencyUSD, Quantity: 1},
			},
			target:         enum.CurrencyUSD,
			expectCost:     250,
			expectCount:    2,
			expectComplete: true,
		},
		{
			name: "missing member marks incomplete but still sums",
			members: []Member{
				{Cost: 100, Currency: enum.CurrencyUSD, Quantity: 2},
				{Missing: true, Quantity: 1},
			},
			target:         enum.CurrencyUSD,
			expectCost:     200,
			expectCount:    2,
			expectComplete: false,
		},
		{
			name: "cross currency members",
			members: []Member{
				{Cost: 370, Currency: enum.CurrencyILS, Quantity: 1},
				{Cost: 92.5, Currency: enum.CurrencyEUR, Quantity: 2},
			},
			target:         enum.CurrencyUSD,
			expectCost:     300,
			expectCount:    2,
			expectComplete: true,
		},
		{
			name:           "empty assembly",
			members:        nil,
			target:         enum.CurrencyUSD,
			expectCost:     0,
			expectCount:    0,
			expectComplete: true,
		},
		{
			name: "default target is USD",
			members: []Member{
				{Cost: 740, Currency: enum.CurrencyILS, Quantity: 1},
			},
			target:         "",
			expectCost:     200,
			expectCount:    1,
			expectComplete: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Rollup(tt.members, rates, tt.target)
			if err != nil {
				t.Fatalf("Rollup: %v", err)
			}
			if got.UnitCost != tt.expectCost {
				t.Errorf("UnitCost = %v, want %v", got.UnitCost, tt.expectCost)
			}
			if got.ComponentCount != tt.expectCount {
				t.Errorf("ComponentCount = %d, want %d", got.ComponentCount, tt.expectCount)
			}
			if got.IsComplete != tt.expectComplete {
				t.Errorf("IsComplete = %v, want %v", got.IsComplete, tt.expectComplete)
			}
		})
	}
}

func TestRollupInvalidRate(t *testing.T) {
	members := []Member{{Cost: 100, Currency: enum.CurrencyEUR, Quantity: 1}}
	_, err := Rollup(members, Rates{USDToILS: 3.7, EURToILS: 0}, enum.CurrencyUSD)
	if err != apperror.ErrInvalidRate {
		t.Errorf("expected ErrInvalidRate, got %v", err)
	}
}
