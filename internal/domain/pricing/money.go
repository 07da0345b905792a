// Package pricing implements the quotation pricing engine: currency
// conversion, margin/MSRP price formulas, assembly roll-up and the
// parameter-change recalculation passes. Everything here is a pure
// transformation over in-memory values; storage and transport live elsewhere.
package pricing

import (
	"math"

	"github.com/quotecraft/quotecraft-api/internal/domain/entity"
	"github.com/quotecraft/quotecraft-api/internal/domain/enum"
	"github.com/quotecraft/quotecraft-api/pkg/apperror"
)

// Rates is a quotation's stored exchange rate pair. Both values are decimal
// multipliers into ILS, fixed when the quotation was created. ILS is the
// pivot: USD to EUR composes through it.
type Rates struct {
	USDToILS float64
	EURToILS float64
}

// RatesOf extracts the rate pair from a quotation header.
func RatesOf(q *entity.Quotation) Rates {
	return Rates{USDToILS: q.RateUSDToILS, EURToILS: q.RateEURToILS}
}

// Validate returns ErrInvalidRate if either rate is zero or negative.
func (r Rates) Validate() error {
	if r.USDToILS <= 0 || r.EURToILS <= 0 {
		return apperror.ErrInvalidRate
	}
	return nil
}

// Round2 rounds a monetary value to 2 decimal places, half up.
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

// Convert converts an amount between two of the supported currencies using
// the given rate pair, rounding the result to 2 decimal places. A zero or
// missing rate on the conversion path is an error, never a silent zero.
func Convert(amount float64, from, to enum.Currency, rates Rates) (float64, error) {
	v, err := convertExact(amount, from, to, rates)
	if err != nil {
		return 0, err
	}
	return Round2(v), nil
}

// convertExact pivots through ILS at full precision. Rounding is the caller's
// concern so that aggregations do not compound rounding error.
func convertExact(amount float64, from, to enum.Currency, rates Rates) (float64, error) {
	if !from.Valid() || !to.Valid() {
		return 0, apperror.ErrInvalidRate
	}
	if from == to {
		return amount, nil
	}

	ils := amount
	switch from {
	case enum.CurrencyUSD:
		if rates.USDToILS <= 0 {
			return 0, apperror.ErrInvalidRate
		}
		ils = amount * rates.USDToILS
	case enum.CurrencyEUR:
		if rates.EURToILS <= 0 {
			return 0, apperror.ErrInvalidRate
		}
		ils = amount * rates.EURToILS
	}

	switch to {
	case enum.CurrencyUSD:
		if rates.USDToILS <= 0 {
			return 0, apperror.ErrInvalidRate
		}
		return ils / rates.USDToILS, nil
	case enum.CurrencyEUR:
		if rates.EURToILS <= 0 {
			return 0, apperror.ErrInvalidRate
		}
		return ils / rates.EURToILS, nil
	default:
		return ils, nil
	}
}

// Spread derives an Amount in all three currencies from a single
// origin-currency value. Each output is converted directly from the origin,
// never from another converted value.
func Spread(amount float64, origin enum.Currency, rates Rates) (entity.Amount, error) {
	var out entity.Amount
	for _, c := range enum.Currencies() {
		v, err := Convert(amount, origin, c, rates)
		if err != nil {
			return entity.Amount{}, err
		}
		out.Set(c, v)
	}
	return out, nil
}
