package pricing

import "github.com/quotecraft/quotecraft-api/internal/domain/enum"

// Member is one resolved assembly member: the component's catalog cost at
// resolution time, or a dangling marker when the reference no longer points
// at an existing, active component.
type Member struct {
	Cost     float64
	Currency enum.Currency
	Quantity float64
	Missing  bool
}

// RollupResult is the aggregate of an assembly's members.
type RollupResult struct {
	UnitCost       float64       `json:"unit_cost"`
	Currency       enum.Currency `json:"currency"`
	ComponentCount int           `json:"component_count"`
	IsComplete     bool          `json:"is_complete"`
}

// Rollup sums member cost times quantity into a single target currency
// (default USD). Missing members contribute nothing and mark the result
// incomplete, but the roll-up still returns a value: incompleteness is a
// warning for the caller, not an error.
func Rollup(members []Member, rates Rates, target enum.Currency) (RollupResult, error) {
	if target == "" {
		target = enum.CurrencyUSD
	}

	res := RollupResult{Currency: target, IsComplete: true}
	var sum float64
	for _, m := range members {
		res.ComponentCount++
		if m.Missing {
			res.IsComplete = false
			continue
		}
		// full precision per member, one rounding at the end
		cost, err := convertExact(m.Cost, m.Currency, target, rates)
		if err != nil {
			return RollupResult{}, err
		}
		sum += cost * m.Quantity
	}
	res.UnitCost = Round2(sum)
	return res, nil
}
