package pricing

import (
	"math"
	"testing"

	"github.com/quotecraft/quotecraft-api/internal/domain/enum"
	"github.com/quotecraft/quotecraft-api/pkg/apperror"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		name   string
		in     float64
		expect float64
	}{
		{"no rounding needed", 1.23, 1.23},
		{"round down", 1.234, 1.23},
		{"round up", 1.239, 1.24},
		{"exact half rounds up", 0.125, 0.13},
		{"exact half rounds up larger", 0.375, 0.38},
		{"third", 100.0 / 3, 33.33},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Round2(tt.in); got != tt.expect {
				t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.expect)
			}
		})
	}
}

func TestConvert(t *testing.T) {
	rates := Rates{USDToILS: 3.70, EURToILS: 4.00}

	tests := []struct {
		name   string
		amount float64
		from   enum.Currency
		to     enum.Currency
		expect float64
	}{
		{"same currency", 100, enum.CurrencyUSD, enum.CurrencyUSD, 100},
		{"usd to ils", 100, enum.CurrencyUSD, enum.CurrencyILS, 370},
		{"ils to usd", 370, enum.CurrencyILS, enum.CurrencyUSD, 100},
		{"eur to ils", 50, enum.CurrencyEUR, enum.CurrencyILS, 200},
		{"usd to eur composes through ils", 100, enum.CurrencyUSD, enum.CurrencyEUR, 92.5},
		{"eur to usd composes through ils", 92.5, enum.CurrencyEUR, enum.CurrencyUSD, 100},
		{"zero amount", 0, enum.CurrencyUSD, enum.CurrencyEUR, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.amount, tt.from, tt.to, rates)
			if err != nil {
				t.Fatalf("Convert(%v, %s, %s) error: %v", tt.amount, tt.from, tt.to, err)
			}
			if got != tt.expect {
				t.Errorf("Convert(%v, %s, %s) = %v, want %v", tt.amount, tt.from, tt.to, got, tt.expect)
			}
		})
	}
}

func TestConvertInvalidRate(t *testing.T) {
	tests := []struct {
		name  string
		rates Rates
		from  enum.Currency
		to    enum.Currency
	}{
		{"zero usd rate", Rates{USDToILS: 0, EURToILS: 4}, enum.CurrencyUSD, enum.CurrencyILS},
		{"zero eur rate", Rates{USDToILS: 3.7, EURToILS: 0}, enum.CurrencyILS, enum.CurrencyEUR},
		{"negative rate", Rates{USDToILS: -1, EURToILS: 4}, enum.CurrencyUSD, enum.CurrencyEUR},
		{"unknown currency", Rates{USDToILS: 3.7, EURToILS: 4}, enum.Currency("GBP"), enum.CurrencyILS},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Convert(100, tt.from, tt.to, tt.rates)
			if err != apperror.ErrInvalidRate {
				t.Errorf("expected ErrInvalidRate, got %v", err)
			}
		})
	}
}

func TestConvertRoundTrip(t *testing.T) {
	rates := Rates{USDToILS: 3.67, EURToILS: 3.94}
	amounts := []float64{0.01, 1, 99.99, 123.45, 10000, 1234567.89}

	for _, amount := range amounts {
		ils, err := Convert(amount, enum.CurrencyUSD, enum.CurrencyILS, rates)
		if err != nil {
			t.Fatalf("usd->ils: %v", err)
		}
		back, err := Convert(ils, enum.CurrencyILS, enum.CurrencyUSD, rates)
		if err != nil {
			t.Fatalf("ils->usd: %v", err)
		}
		if math.Abs(back-amount) > 0.01 {
			t.Errorf("round trip of %v through ILS returned %v, diff > 0.01", amount, back)
		}
	}
}

func TestSpread(t *testing.T) {
	rates := Rates{USDToILS: 3.70, EURToILS: 4.00}

	out, err := Spread(100, enum.CurrencyUSD, rates)
	if err != nil {
		t.Fatalf("spread: %v", err)
	}
	if out.USD != 100 {
		t.Errorf("origin value changed: got %v", out.USD)
	}
	if out.ILS != 370 {
		t.Errorf("ILS = %v, want 370", out.ILS)
	}
	if out.EUR != 92.5 {
		t.Errorf("EUR = %v, want 92.5", out.EUR)
	}
}

func TestRatesValidate(t *testing.T) {
	if err := (Rates{USDToILS: 3.7, EURToILS: 4}).Validate(); err != nil {
		t.Errorf("valid rates rejected: %v", err)
	}
	if err := (Rates{USDToILS: 0, EURToILS: 4}).Validate(); err != apperror.ErrInvalidRate {
		t.Errorf("expected ErrInvalidRate, got %v", err)
	}
}
