package pricing

// Margin is expressed as a percentage of the selling price, not a markup over
// cost: price = cost / (1 - margin/100). The two conventions diverge sharply
// at high margins, so the inverse below must stay consistent with this.

// PriceFromMargin computes a selling price from a cost and a margin
// percentage. Margins outside [0, 100) cannot produce a finite price and
// collapse to the cost itself; the services validate margins before they
// reach this point.
func PriceFromMargin(cost, marginPercent float64) float64 {
	if marginPercent <= 0 || marginPercent >= 100 {
		return Round2(cost)
	}
	return Round2(cost / (1 - marginPercent/100))
}

// MarginFromPrice back-derives the margin percentage implied by a cost and a
// selling price. A zero price reports margin 0 so that downstream aggregation
// stays well-defined.
func MarginFromPrice(cost, price float64) float64 {
	if price == 0 {
		return 0
	}
	return Round2((price - cost) / price * 100)
}
