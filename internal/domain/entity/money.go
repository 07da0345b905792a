package entity

import "github.com/quotecraft/quotecraft-api/internal/domain/enum"

// Amount holds a monetary value denominated in each of the three supported
// currencies. Quotation money fields are always stored in all three so that a
// display-currency switch never requires a recompute.
type Amount struct {
	ILS float64 `gorm:"type:decimal(15,2);default:0" json:"ils"`
	USD float64 `gorm:"type:decimal(15,2);default:0" json:"usd"`
	EUR float64 `gorm:"type:decimal(15,2);default:0" json:"eur"`
}

// In returns the value denominated in the given currency.
func (a Amount) In(c enum.Currency) float64 {
	switch c {
	case enum.CurrencyUSD:
		return a.USD
	case enum.CurrencyEUR:
		return a.EUR
	default:
		return a.ILS
	}
}

// Set assigns the value for the given currency.
func (a *Amount) Set(c enum.Currency, v float64) {
	switch c {
	case enum.CurrencyUSD:
		a.USD = v
	case enum.CurrencyEUR:
		a.EUR = v
	default:
		a.ILS = v
	}
}

// Add returns the element-wise sum of two amounts.
func (a Amount) Add(b Amount) Amount {
	return Amount{
		ILS: a.ILS + b.ILS,
		USD: a.USD + b.USD,
		EUR: a.EUR + b.EUR,
	}
}
