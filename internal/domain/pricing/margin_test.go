package pricing

import (
	"math"
	"testing"
)

func TestPriceFromMargin(t *testing.T) {
	tests := []struct {
		name   string
		cost   float64
		margin float64
		expect float64
	}{
		{"calibration 25 percent", 100, 25, 133.33},
		{"calibration 30 percent", 100, 30, 142.86},
		{"20 percent", 100, 20, 125},
		{"zero margin", 100, 0, 100},
		{"zero cost", 0, 25, 0},
		{"margin at 100 collapses to cost", 100, 100, 100},
		{"negative margin collapses to cost", 100, -5, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PriceFromMargin(tt.cost, tt.margin); got != tt.expect {
				t.Errorf("PriceFromMargin(%v, %v) = %v, want %v", tt.cost, tt.margin, got, tt.expect)
			}
		})
	}
}

func TestMarginFromPrice(t *testing.T) {
	tests := []struct {
		name   string
		cost   float64
		price  float64
		expect float64
	}{
		{"quarter margin", 100, 133.33, 25},
		{"zero price reports zero", 100, 0, 0},
		{"zero cost", 0, 50, 100},
		{"price equals cost", 80, 80, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MarginFromPrice(tt.cost, tt.price); got != tt.expect {
				t.Errorf("MarginFromPrice(%v, %v) = %v, want %v", tt.cost, tt.price, got, tt.expect)
			}
		})
	}
}

// priceFromMargin(cost, marginFromPrice(cost, price)) must reproduce the price
// within rounding tolerance for positive costs.
func TestMarginInverseLaw(t *testing.T) {
	costs := []float64{1, 50, 100, 999.99, 12345.67}
	margins := []float64{5, 20, 25, 50, 75, 90}

	for _, cost := range costs {
		for _, margin := range margins {
			price := PriceFromMargin(cost, margin)
			back := PriceFromMargin(cost, MarginFromPrice(cost, price))
			if math.Abs(back-price) > 0.05 {
				t.Errorf("inverse law broken for cost=%v margin=%v: price=%v back=%v", cost, margin, price, back)
			}
		}
	}
}
