package pricing

import (
	"github.com/quotecraft/quotecraft-api/internal/domain/entity"
	"github.com/quotecraft/quotecraft-api/internal/domain/enum"
)

// The recalculation passes below are deliberately narrow: each one rewrites
// only the fields whose formula inputs depend on the parameter that changed,
// and leaves every other field byte-identical. Each pass is a total function
// of (tree, parameter), so applying the same pass twice with an unchanged
// parameter is a no-op, and passes over disjoint field sets commute.
// RecomputeTotals always runs last, regardless of which pass fired.

// ApplyRateChange re-derives, for every item, the non-origin-currency unit
// cost fields from the origin-currency cost under the quotation's current
// rates, then prices and totals. Origin-currency costs, pricing modes and
// quantities are untouched.
func ApplyRateChange(q *entity.Quotation) error {
	rates := RatesOf(q)
	if err := rates.Validate(); err != nil {
		return err
	}
	for si := range q.Systems {
		for ii := range q.Systems[si].Items {
			it := &q.Systems[si].Items[ii]
			if err := RefreshUnitCost(it, rates); err != nil {
				return err
			}
			if err := ApplyDerived(q, it); err != nil {
				return err
			}
		}
	}
	RecomputeTotals(q)
	return nil
}

// ApplyMarginChange recomputes unit and total price for items that are in
// margin mode and follow the quotation default. Items with an item-level
// margin override and all MSRP-mode items are untouched.
func ApplyMarginChange(q *entity.Quotation) error {
	for si := range q.Systems {
		for ii := range q.Systems[si].Items {
			it := &q.Systems[si].Items[ii]
			if EffectiveMSRPMode(q, it) || it.MarginPercent != nil {
				continue
			}
			if err := ApplyDerived(q, it); err != nil {
				return err
			}
		}
	}
	RecomputeTotals(q)
	return nil
}

// ApplyMSRPToggle recomputes pricing mode and price for every item that has
// MSRP data and no item-level mode override. Items without MSRP data remain
// in margin mode whichever way the quotation-wide flag points.
func ApplyMSRPToggle(q *entity.Quotation) error {
	for si := range q.Systems {
		for ii := range q.Systems[si].Items {
			it := &q.Systems[si].Items[ii]
			if !HasMSRPData(it) || it.UseMSRP != nil {
				continue
			}
			if err := ApplyDerived(q, it); err != nil {
				return err
			}
		}
	}
	RecomputeTotals(q)
	return nil
}

// ApplyDayRateChange rewrites unit cost, price and totals for internal labor
// items, whose cost tracks the quotation day-rate live. External labor and
// all non-labor items are untouched.
func ApplyDayRateChange(q *entity.Quotation) error {
	rates := RatesOf(q)
	if err := rates.Validate(); err != nil {
		return err
	}
	for si := range q.Systems {
		for ii := range q.Systems[si].Items {
			it := &q.Systems[si].Items[ii]
			if !it.IsInternalLabor {
				continue
			}
			// internal labor is always denominated in ILS
			it.OriginCurrency = enum.CurrencyILS
			it.UnitCost.Set(enum.CurrencyILS, q.DayRateILS)
			if err := RefreshUnitCost(it, rates); err != nil {
				return err
			}
			if err := ApplyDerived(q, it); err != nil {
				return err
			}
		}
	}
	RecomputeTotals(q)
	return nil
}

// RecomputeTotals re-derives system and quotation aggregate totals bottom-up
// from the items. Item totals themselves are maintained by ApplyDerived.
func RecomputeTotals(q *entity.Quotation) {
	var qCost, qPrice entity.Amount
	for si := range q.Systems {
		sys := &q.Systems[si]
		var sCost, sPrice entity.Amount
		for ii := range sys.Items {
			sCost = sCost.Add(sys.Items[ii].TotalCost)
			sPrice = sPrice.Add(sys.Items[ii].TotalPrice)
		}
		sys.TotalCost = sCost
		sys.TotalPrice = sPrice
		qCost = qCost.Add(sCost)
		qPrice = qPrice.Add(sPrice)
	}
	q.TotalCost = qCost
	q.TotalPrice = qPrice
}
