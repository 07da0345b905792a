package enum

// Currency identifies one of the three currencies a quotation prices in.
// ILS is the pivot currency: the stored rate pair converts ILS to and from
// USD and EUR, and every cross conversion composes through ILS.
type Currency string

const (
	CurrencyILS Currency = "ILS"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

// Valid reports whether the currency is one of the supported three.
func (c Currency) Valid() bool {
	switch c {
	case CurrencyILS, CurrencyUSD, CurrencyEUR:
		return true
	}
	return false
}

// Currencies lists all supported currencies.
func Currencies() []Currency {
	return []Currency{CurrencyILS, CurrencyUSD, CurrencyEUR}
}
