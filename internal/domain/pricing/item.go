package pricing

import (
	"sort"

	"github.com/quotecraft/quotecraft-api/internal/domain/entity"
	"github.com/quotecraft/quotecraft-api/internal/domain/enum"
)

// HasMSRPData reports whether an item carries a usable snapshotted MSRP price.
// Items without MSRP data stay in margin mode regardless of any toggle.
func HasMSRPData(it *entity.QuotationItem) bool {
	return it.MSRPPrice != nil && *it.MSRPPrice > 0 && it.MSRPCurrency != nil
}

// EffectiveMSRPMode resolves the item's active pricing mode at read time:
// item override when set, quotation default otherwise, and always margin mode
// when the item has no MSRP data. The resolution is never cached on the item.
func EffectiveMSRPMode(q *entity.Quotation, it *entity.QuotationItem) bool {
	if !HasMSRPData(it) {
		return false
	}
	if it.UseMSRP != nil {
		return *it.UseMSRP
	}
	return q.UseMSRP
}

// EffectiveMarginPercent resolves the margin that applies to the item: the
// item-level override when set, the quotation default otherwise.
func EffectiveMarginPercent(q *entity.Quotation, it *entity.QuotationItem) float64 {
	if it.MarginPercent != nil {
		return *it.MarginPercent
	}
	return q.MarginPercent
}

// ReportedMargin returns the margin percentage implied by the item's current
// origin-currency cost and price. In MSRP mode this is the derived, read-only
// margin; in margin mode it echoes the applied margin within rounding.
func ReportedMargin(it *entity.QuotationItem) float64 {
	return MarginFromPrice(it.UnitCost.In(it.OriginCurrency), it.UnitPrice.In(it.OriginCurrency))
}

// ApplyDerived recomputes the item's derived fields from its unit costs and
// resolved pricing mode: unit price per currency, then total cost and total
// price per currency. Unit costs themselves are taken as-is; the recalc
// passes decide when those are refreshed.
func ApplyDerived(q *entity.Quotation, it *entity.QuotationItem) error {
	rates := RatesOf(q)

	if EffectiveMSRPMode(q, it) {
		prices, err := Spread(*it.MSRPPrice, *it.MSRPCurrency, rates)
		if err != nil {
			return err
		}
		it.UnitPrice = prices
	} else {
		margin := EffectiveMarginPercent(q, it)
		var prices entity.Amount
		for _, c := range enum.Currencies() {
			prices.Set(c, PriceFromMargin(it.UnitCost.In(c), margin))
		}
		it.UnitPrice = prices
	}

	it.TotalCost = scale(it.UnitCost, it.Quantity)
	it.TotalPrice = scale(it.UnitPrice, it.Quantity)
	return nil
}

// RefreshUnitCost re-derives the item's non-origin-currency unit costs from
// the origin-currency cost. The origin value is never overwritten, which
// prevents conversion error from compounding across repeated rate changes.
func RefreshUnitCost(it *entity.QuotationItem, rates Rates) error {
	origin := it.UnitCost.In(it.OriginCurrency)
	spread, err := Spread(origin, it.OriginCurrency, rates)
	if err != nil {
		return err
	}
	spread.Set(it.OriginCurrency, origin)
	it.UnitCost = spread
	return nil
}

// Renumber enforces the dense, 1-based display order invariant over a
// system's items, preserving the existing relative order.
func Renumber(items []entity.QuotationItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].DisplayOrder < items[j].DisplayOrder
	})
	for i := range items {
		items[i].DisplayOrder = i + 1
	}
}

// RenumberSystems does the same for the systems of a quotation.
func RenumberSystems(systems []entity.QuotationSystem) {
	sort.SliceStable(systems, func(i, j int) bool {
		return systems[i].DisplayOrder < systems[j].DisplayOrder
	})
	for i := range systems {
		systems[i].DisplayOrder = i + 1
	}
}

// RescaleTotals recomputes the item's totals from its unit values. A quantity
// edit goes through here alone; unit cost and unit price are untouched.
func RescaleTotals(it *entity.QuotationItem) {
	it.TotalCost = scale(it.UnitCost, it.Quantity)
	it.TotalPrice = scale(it.UnitPrice, it.Quantity)
}

func scale(a entity.Amount, qty float64) entity.Amount {
	return entity.Amount{
		ILS: Round2(a.ILS * qty),
		USD: Round2(a.USD * qty),
		EUR: Round2(a.EUR * qty),
	}
}
