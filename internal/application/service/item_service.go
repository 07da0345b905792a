package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/quotecraft/quotecraft-api/internal/domain/entity"
	"github.com/quotecraft/quotecraft-api/internal/domain/enum"
	"github.com/quotecraft/quotecraft-api/internal/domain/pricing"
	"github.com/quotecraft/quotecraft-api/internal/domain/repository"
	"github.com/quotecraft/quotecraft-api/pkg/apperror"
)

// ItemService handles line item and system edits within a quotation tree.
// Every mutation reloads the tree, applies the edit in memory through the
// pricing engine, renumbers, recomputes totals and saves conditionally on the
// loaded lock version.
type ItemService struct {
	quotationRepo repository.QuotationRepository
	snapshots     *SnapshotService
}

// NewItemService creates a new item service
func NewItemService(quotationRepo repository.QuotationRepository, snapshots *SnapshotService) *ItemService {
	return &ItemService{
		quotationRepo: quotationRepo,
		snapshots:     snapshots,
	}
}

// CustomItemInput describes a free-form line with a manually entered cost.
type CustomItemInput struct {
	Name        string
	Description string
	Cost        float64
	Currency    enum.Currency
}

// AddItemInput contains the data needed to add a line item. Exactly one of
// Ref and Custom must be set.
type AddItemInput struct {
	QuotationID uuid.UUID
	SystemID    uuid.UUID
	Ref         *CatalogRef
	Custom      *CustomItemInput
	Quantity    float64

	MarginPercent *float64
	UseMSRP       *bool
}

// AddItemResult carries the updated tree plus the added item and any
// non-fatal resolution warning.
type AddItemResult struct {
	Quotation          *entity.Quotation
	Item               *entity.QuotationItem
	IncompleteAssembly bool
}

// AddItem snapshots the referenced catalog entity (or takes the custom input
// as-is), spreads its cost under the quotation's rates and appends it to the
// target system.
func (s *ItemService) AddItem(ctx context.Context, input AddItemInput) (*AddItemResult, error) {
	if input.Quantity <= 0 {
		return nil, apperror.ErrInvalidQuantity
	}
	if (input.Ref == nil) == (input.Custom == nil) {
		return nil, apperror.NewBadRequestError("Provide either a catalog reference or custom item data")
	}
	if input.MarginPercent != nil && (*input.MarginPercent < 0 || *input.MarginPercent >= 100) {
		return nil, apperror.NewBadRequestError("Margin percent must be in [0, 100)")
	}

	quotation, err := s.loadTree(ctx, input.QuotationID)
	if err != nil {
		return nil, err
	}
	system := findSystem(quotation, input.SystemID)
	if system == nil {
		return nil, apperror.NewNotFoundError("System")
	}

	item := entity.QuotationItem{
		SystemID:      system.ID,
		Quantity:      input.Quantity,
		DisplayOrder:  len(system.Items) + 1,
		MarginPercent: input.MarginPercent,
		UseMSRP:       input.UseMSRP,
	}

	incomplete := false
	if input.Ref != nil {
		snapshot, err := s.snapshots.Resolve(ctx, *input.Ref, pricing.RatesOf(quotation), quotation.DayRateILS)
		if err != nil {
			return nil, err
		}
		item.ItemType = snapshot.ItemType
		item.Name = snapshot.Name
		item.Description = snapshot.Description
		item.OriginCurrency = snapshot.OriginCurrency
		item.UnitCost = snapshot.UnitCost
		item.MSRPPrice = snapshot.MSRPPrice
		item.MSRPCurrency = snapshot.MSRPCurrency
		item.MSRPDiscountPercent = snapshot.MSRPDiscountPercent
		item.ComponentID = snapshot.ComponentID
		item.AssemblyID = snapshot.AssemblyID
		item.LaborTypeID = snapshot.LaborTypeID
		item.LaborSubtype = snapshot.LaborSubtype
		item.IsInternalLabor = snapshot.IsInternalLabor
		incomplete = snapshot.IncompleteAssembly
	} else {
		if !input.Custom.Currency.Valid() {
			return nil, apperror.NewBadRequestError("Invalid currency")
		}
		cost, err := pricing.Spread(input.Custom.Cost, input.Custom.Currency, pricing.RatesOf(quotation))
		if err != nil {
			return nil, err
		}
		item.ItemType = enum.ItemTypeCustom
		item.Name = input.Custom.Name
		item.Description = input.Custom.Description
		item.OriginCurrency = input.Custom.Currency
		item.UnitCost = cost
	}

	if err := pricing.ApplyDerived(quotation, &item); err != nil {
		return nil, err
	}
	system.Items = append(system.Items, item)
	pricing.RecomputeTotals(quotation)

	if err := s.quotationRepo.SaveTree(ctx, quotation); err != nil {
		return nil, err
	}
	return &AddItemResult{
		Quotation:          quotation,
		Item:               &system.Items[len(system.Items)-1],
		IncompleteAssembly: incomplete,
	}, nil
}

// UpdateItemInput carries line item edits. Nil fields are unchanged; the
// Clear flags reset the matching override back to the quotation default.
type UpdateItemInput struct {
	QuotationID uuid.UUID
	ItemID      uuid.UUID

	Name        *string
	Description *string
	Quantity    *float64

	MarginPercent      *float64
	ClearMarginPercent bool
	UseMSRP            *bool
	ClearUseMSRP       bool

	// UnitPrice is a direct price edit in the item's origin currency. It is
	// stored as the margin override that reproduces it, so the item survives
	// later recalculation passes with the edited price intact.
	UnitPrice *float64
}

// UpdateItem applies an item edit and recomputes what the edit touched: a
// quantity change rescales totals only, pricing changes re-derive the price.
func (s *ItemService) UpdateItem(ctx context.Context, input UpdateItemInput) (*entity.Quotation, error) {
	quotation, err := s.loadTree(ctx, input.QuotationID)
	if err != nil {
		return nil, err
	}
	item := findItem(quotation, input.ItemID)
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Description != nil {
		item.Description = *input.Description
	}

	if input.Quantity != nil {
		if *input.Quantity <= 0 {
			return nil, apperror.ErrInvalidQuantity
		}
		item.Quantity = *input.Quantity
		pricing.RescaleTotals(item)
	}

	repriced := false
	switch {
	case input.ClearMarginPercent:
		item.MarginPercent = nil
		repriced = true
	case input.MarginPercent != nil:
		if *input.MarginPercent < 0 || *input.MarginPercent >= 100 {
			return nil, apperror.NewBadRequestError("Margin percent must be in [0, 100)")
		}
		item.MarginPercent = input.MarginPercent
		repriced = true
	}

	switch {
	case input.ClearUseMSRP:
		item.UseMSRP = nil
		repriced = true
	case input.UseMSRP != nil:
		item.UseMSRP = input.UseMSRP
		repriced = true
	}

	if input.UnitPrice != nil {
		if pricing.EffectiveMSRPMode(quotation, item) {
			return nil, apperror.NewBadRequestError("Price is MSRP-derived for this item, switch it to margin mode first")
		}
		margin := pricing.MarginFromPrice(item.UnitCost.In(item.OriginCurrency), *input.UnitPrice)
		item.MarginPercent = &margin
		repriced = true
	}

	if repriced {
		if err := pricing.ApplyDerived(quotation, item); err != nil {
			return nil, err
		}
	}
	pricing.RecomputeTotals(quotation)

	if err := s.quotationRepo.SaveTree(ctx, quotation); err != nil {
		return nil, err
	}
	return quotation, nil
}

// DeleteItem removes a line item and closes the display order gap it leaves
func (s *ItemService) DeleteItem(ctx context.Context, quotationID, itemID uuid.UUID) (*entity.Quotation, error) {
	quotation, err := s.loadTree(ctx, quotationID)
	if err != nil {
		return nil, err
	}

	found := false
	for si := range quotation.Systems {
		system := &quotation.Systems[si]
		for ii := range system.Items {
			if system.Items[ii].ID == itemID {
				system.Items = append(system.Items[:ii], system.Items[ii+1:]...)
				pricing.Renumber(system.Items)
				found = true
				break
			}
		}
		if found {
			break
		}
	}
	if !found {
		return nil, apperror.NewNotFoundError("Item")
	}

	pricing.RecomputeTotals(quotation)
	if err := s.quotationRepo.SaveTree(ctx, quotation); err != nil {
		return nil, err
	}
	return quotation, nil
}

// MoveItem repositions a line item within its system. Position is 1-based
// and clamped to the valid range.
func (s *ItemService) MoveItem(ctx context.Context, quotationID, itemID uuid.UUID, position int) (*entity.Quotation, error) {
	quotation, err := s.loadTree(ctx, quotationID)
	if err != nil {
		return nil, err
	}

	var system *entity.QuotationSystem
	index := -1
	for si := range quotation.Systems {
		for ii := range quotation.Systems[si].Items {
			if quotation.Systems[si].Items[ii].ID == itemID {
				system = &quotation.Systems[si]
				index = ii
			}
		}
	}
	if system == nil {
		return nil, apperror.NewNotFoundError("Item")
	}

	if position < 1 {
		position = 1
	}
	if position > len(system.Items) {
		position = len(system.Items)
	}

	moved := system.Items[index]
	rest := append(system.Items[:index:index], system.Items[index+1:]...)
	items := make([]entity.QuotationItem, 0, len(system.Items))
	items = append(items, rest[:position-1]...)
	items = append(items, moved)
	items = append(items, rest[position-1:]...)
	for i := range items {
		items[i].DisplayOrder = i + 1
	}
	system.Items = items

	if err := s.quotationRepo.SaveTree(ctx, quotation); err != nil {
		return nil, err
	}
	return quotation, nil
}

// AddSystem appends a named system to the quotation
func (s *ItemService) AddSystem(ctx context.Context, quotationID uuid.UUID, name string) (*entity.Quotation, error) {
	quotation, err := s.loadTree(ctx, quotationID)
	if err != nil {
		return nil, err
	}

	quotation.Systems = append(quotation.Systems, entity.QuotationSystem{
		QuotationID:  quotation.ID,
		Name:         name,
		DisplayOrder: len(quotation.Systems) + 1,
	})

	if err := s.quotationRepo.SaveTree(ctx, quotation); err != nil {
		return nil, err
	}
	return quotation, nil
}

// RenameSystem changes a system's display name
func (s *ItemService) RenameSystem(ctx context.Context, quotationID, systemID uuid.UUID, name string) (*entity.Quotation, error) {
	quotation, err := s.loadTree(ctx, quotationID)
	if err != nil {
		return nil, err
	}
	system := findSystem(quotation, systemID)
	if system == nil {
		return nil, apperror.NewNotFoundError("System")
	}
	system.Name = name

	if err := s.quotationRepo.SaveTree(ctx, quotation); err != nil {
		return nil, err
	}
	return quotation, nil
}

// DeleteSystem removes a system with all of its items
func (s *ItemService) DeleteSystem(ctx context.Context, quotationID, systemID uuid.UUID) (*entity.Quotation, error) {
	quotation, err := s.loadTree(ctx, quotationID)
	if err != nil {
		return nil, err
	}

	found := false
	for si := range quotation.Systems {
		if quotation.Systems[si].ID == systemID {
			quotation.Systems = append(quotation.Systems[:si], quotation.Systems[si+1:]...)
			found = true
			break
		}
	}
	if !found {
		return nil, apperror.NewNotFoundError("System")
	}

	pricing.RenumberSystems(quotation.Systems)
	pricing.RecomputeTotals(quotation)
	if err := s.quotationRepo.SaveTree(ctx, quotation); err != nil {
		return nil, err
	}
	return quotation, nil
}

func (s *ItemService) loadTree(ctx context.Context, id uuid.UUID) (*entity.Quotation, error) {
	quotation, err := s.quotationRepo.GetWithTree(ctx, id)
	if err != nil {
		return nil, err
	}
	if quotation == nil {
		return nil, apperror.NewNotFoundError("Quotation")
	}
	return quotation, nil
}

func findSystem(q *entity.Quotation, id uuid.UUID) *entity.QuotationSystem {
	for i := range q.Systems {
		if q.Systems[i].ID == id {
			return &q.Systems[i]
		}
	}
	return nil
}

func findItem(q *entity.Quotation, id uuid.UUID) *entity.QuotationItem {
	for si := range q.Systems {
		for ii := range q.Systems[si].Items {
			if q.Systems[si].Items[ii].ID == id {
				return &q.Systems[si].Items[ii]
			}
		}
	}
	return nil
}
