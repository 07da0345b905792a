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

// SnapshotService resolves catalog references into immutable price snapshots.
// The snapshot is taken once, when an item is added; later catalog edits
// never reach back into existing quotations.
type SnapshotService struct {
	componentRepo repository.ComponentRepository
	assemblyRepo  repository.AssemblyRepository
	laborTypeRepo repository.LaborTypeRepository
}

// NewSnapshotService creates a new snapshot service
func NewSnapshotService(
	componentRepo repository.ComponentRepository,
	assemblyRepo repository.AssemblyRepository,
	laborTypeRepo repository.LaborTypeRepository,
) *SnapshotService {
	return &SnapshotService{
		componentRepo: componentRepo,
		assemblyRepo:  assemblyRepo,
		laborTypeRepo: laborTypeRepo,
	}
}

// CatalogRef identifies the catalog entity a line item should snapshot.
type CatalogRef struct {
	ItemType enum.ItemType
	ID       uuid.UUID
}

// ItemSnapshot is the immutable pricing data embedded into a line item at add
// time. UnitCost is already spread across all three currencies under the
// quotation's rates, with OriginCurrency marking the source value.
type ItemSnapshot struct {
	ItemType       enum.ItemType
	Name           string
	Description    string
	OriginCurrency enum.Currency
	UnitCost       entity.Amount

	MSRPPrice           *float64
	MSRPCurrency        *enum.Currency
	MSRPDiscountPercent *float64

	ComponentID *uuid.UUID
	AssemblyID  *uuid.UUID
	LaborTypeID *uuid.UUID

	LaborSubtype    string
	IsInternalLabor bool

	// IncompleteAssembly is set when an assembly member reference dangles.
	// The item is still produced (as a frozen custom snapshot); warning the
	// user is the caller's responsibility.
	IncompleteAssembly bool
}

// Resolve produces the snapshot for a catalog reference. A reference that
// cannot be resolved yields SnapshotUnavailable; callers must then abort the
// add or fall back to an explicit custom item, never to a zero-cost line.
func (s *SnapshotService) Resolve(ctx context.Context, ref CatalogRef, rates pricing.Rates, dayRateILS float64) (*ItemSnapshot, error) {
	switch ref.ItemType {
	case enum.ItemTypeComponent:
		return s.resolveComponent(ctx, ref.ID, rates)
	case enum.ItemTypeAssembly:
		return s.resolveAssembly(ctx, ref.ID, rates)
	case enum.ItemTypeLabor:
		return s.resolveLabor(ctx, ref.ID, rates, dayRateILS)
	default:
		return nil, apperror.NewBadRequestError("Unknown catalog reference type")
	}
}

func (s *SnapshotService) resolveComponent(ctx context.Context, id uuid.UUID, rates pricing.Rates) (*ItemSnapshot, error) {
	component, err := s.componentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if component == nil || !component.Active {
		return nil, apperror.NewSnapshotUnavailableError(id.String())
	}

	cost, err := pricing.Spread(component.Cost, component.Currency, rates)
	if err != nil {
		return nil, err
	}

	snapshot := &ItemSnapshot{
		ItemType:       enum.ItemTypeComponent,
		Name:           component.Name,
		Description:    component.Description,
		OriginCurrency: component.Currency,
		UnitCost:       cost,
		ComponentID:    &component.ID,
	}
	if component.HasMSRP() {
		snapshot.MSRPPrice = component.MSRPPrice
		snapshot.MSRPCurrency = component.MSRPCurrency
		snapshot.MSRPDiscountPercent = component.PartnerDiscountPercent
	}
	return snapshot, nil
}

func (s *SnapshotService) resolveAssembly(ctx context.Context, id uuid.UUID, rates pricing.Rates) (*ItemSnapshot, error) {
	assembly, err := s.assemblyRepo.GetWithMembers(ctx, id)
	if err != nil {
		return nil, err
	}
	if assembly == nil {
		return nil, apperror.NewSnapshotUnavailableError(id.String())
	}

	members, err := s.resolveMembers(ctx, assembly.Members)
	if err != nil {
		return nil, err
	}

	rollup, err := pricing.Rollup(members, rates, assembly.Currency)
	if err != nil {
		return nil, err
	}

	cost, err := pricing.Spread(rollup.UnitCost, rollup.Currency, rates)
	if err != nil {
		return nil, err
	}

	snapshot := &ItemSnapshot{
		ItemType:       enum.ItemTypeAssembly,
		Name:           assembly.Name,
		Description:    assembly.Description,
		OriginCurrency: rollup.Currency,
		UnitCost:       cost,
		AssemblyID:     &assembly.ID,
	}
	if !rollup.IsComplete {
		// frozen snapshot only: the item never participates in live recompute
		snapshot.ItemType = enum.ItemTypeCustom
		snapshot.IncompleteAssembly = true
	}
	return snapshot, nil
}

// ResolveRollup recomputes an assembly's aggregate from the current catalog
// state, for preview purposes. Existing quotation items keep their snapshot.
func (s *SnapshotService) ResolveRollup(ctx context.Context, id uuid.UUID, rates pricing.Rates) (*pricing.RollupResult, error) {
	assembly, err := s.assemblyRepo.GetWithMembers(ctx, id)
	if err != nil {
		return nil, err
	}
	if assembly == nil {
		return nil, apperror.NewNotFoundError("Assembly")
	}

	members, err := s.resolveMembers(ctx, assembly.Members)
	if err != nil {
		return nil, err
	}

	rollup, err := pricing.Rollup(members, rates, assembly.Currency)
	if err != nil {
		return nil, err
	}
	return &rollup, nil
}

func (s *SnapshotService) resolveMembers(ctx context.Context, rows []entity.AssemblyComponent) ([]pricing.Member, error) {
	members := make([]pricing.Member, 0, len(rows))
	for _, row := range rows {
		component, err := s.componentRepo.GetByID(ctx, row.ComponentID)
		if err != nil {
			return nil, err
		}
		if component == nil || !component.Active {
			members = append(members, pricing.Member{Missing: true, Quantity: row.Quantity})
			continue
		}
		members = append(members, pricing.Member{
			Cost:     component.Cost,
			Currency: component.Currency,
			Quantity: row.Quantity,
		})
	}
	return members, nil
}

func (s *SnapshotService) resolveLabor(ctx context.Context, id uuid.UUID, rates pricing.Rates, dayRateILS float64) (*ItemSnapshot, error) {
	laborType, err := s.laborTypeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if laborType == nil {
		return nil, apperror.NewSnapshotUnavailableError(id.String())
	}

	snapshot := &ItemSnapshot{
		ItemType:        enum.ItemTypeLabor,
		Name:            laborType.Name,
		Description:     laborType.Description,
		LaborTypeID:     &laborType.ID,
		LaborSubtype:    laborType.Subtype,
		IsInternalLabor: laborType.IsInternal,
	}

	if laborType.IsInternal {
		// live cost: tracks the quotation day-rate, always ILS denominated
		snapshot.OriginCurrency = enum.CurrencyILS
		cost, err := pricing.Spread(dayRateILS, enum.CurrencyILS, rates)
		if err != nil {
			return nil, err
		}
		snapshot.UnitCost = cost
		return snapshot, nil
	}

	if laborType.DayRate == nil {
		return nil, apperror.NewSnapshotUnavailableError(id.String())
	}
	snapshot.OriginCurrency = laborType.Currency
	cost, err := pricing.Spread(*laborType.DayRate, laborType.Currency, rates)
	if err != nil {
		return nil, err
	}
	snapshot.UnitCost = cost
	return snapshot, nil
}
