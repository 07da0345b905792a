package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/quotecraft/quotecraft-api/internal/domain/entity"
	"github.com/quotecraft/quotecraft-api/internal/domain/pricing"
	"github.com/quotecraft/quotecraft-api/internal/domain/repository"
	"github.com/quotecraft/quotecraft-api/pkg/apperror"
	"github.com/quotecraft/quotecraft-api/pkg/pagination"
)

// CatalogService handles component, assembly and labor type management
type CatalogService struct {
	componentRepo repository.ComponentRepository
	assemblyRepo  repository.AssemblyRepository
	laborTypeRepo repository.LaborTypeRepository
	snapshots     *SnapshotService
	defaults      PricingDefaults
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	componentRepo repository.ComponentRepository,
	assemblyRepo repository.AssemblyRepository,
	laborTypeRepo repository.LaborTypeRepository,
	snapshots *SnapshotService,
	defaults PricingDefaults,
) *CatalogService {
	return &CatalogService{
		componentRepo: componentRepo,
		assemblyRepo:  assemblyRepo,
		laborTypeRepo: laborTypeRepo,
		snapshots:     snapshots,
		defaults:      defaults,
	}
}

// CreateComponent validates and persists a catalog component
func (s *CatalogService) CreateComponent(ctx context.Context, component *entity.Component) error {
	if err := validateComponent(component); err != nil {
		return err
	}
	return s.componentRepo.Create(ctx, component)
}

// GetComponent retrieves a component by ID
func (s *CatalogService) GetComponent(ctx context.Context, id uuid.UUID) (*entity.Component, error) {
	component, err := s.componentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if component == nil {
		return nil, apperror.NewNotFoundError("Component")
	}
	return component, nil
}

// UpdateComponent applies a component edit. Existing quotation items keep
// their snapshot and are not touched.
func (s *CatalogService) UpdateComponent(ctx context.Context, component *entity.Component) error {
	if err := validateComponent(component); err != nil {
		return err
	}
	existing, err := s.GetComponent(ctx, component.ID)
	if err != nil {
		return err
	}
	component.CreatedAt = existing.CreatedAt
	return s.componentRepo.Update(ctx, component)
}

// DeleteComponent removes a component from the catalog. Assemblies that
// reference it become incomplete; quotation items keep their snapshot.
func (s *CatalogService) DeleteComponent(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetComponent(ctx, id); err != nil {
		return err
	}
	return s.componentRepo.Delete(ctx, id)
}

// ListComponents retrieves components with pagination and search
func (s *CatalogService) ListComponents(ctx context.Context, params *repository.CatalogFilterParams) (*pagination.PaginatedResult[entity.Component], error) {
	params = normalizeCatalogParams(params)
	components, total, err := s.componentRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	meta := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(components, meta), nil
}

func validateComponent(component *entity.Component) error {
	if component.Name == "" {
		return apperror.NewBadRequestError("Component name is required")
	}
	if component.Cost < 0 {
		return apperror.NewBadRequestError("Component cost cannot be negative")
	}
	if !component.Currency.Valid() {
		return apperror.NewBadRequestError("Invalid currency")
	}
	if component.MSRPPrice != nil && (component.MSRPCurrency == nil || !component.MSRPCurrency.Valid()) {
		return apperror.NewBadRequestError("MSRP price requires an MSRP currency")
	}
	return nil
}

// CreateAssembly persists an assembly with its member list
func (s *CatalogService) CreateAssembly(ctx context.Context, assembly *entity.Assembly) error {
	if assembly.Name == "" {
		return apperror.NewBadRequestError("Assembly name is required")
	}
	if !assembly.Currency.Valid() {
		return apperror.NewBadRequestError("Invalid currency")
	}
	if err := validateMembers(assembly.Members); err != nil {
		return err
	}
	normalizeMemberPositions(assembly.Members)
	return s.assemblyRepo.Create(ctx, assembly)
}

// GetAssembly retrieves an assembly with its members and its current roll-up,
// recomputed from live catalog state under the instance default rates.
func (s *CatalogService) GetAssembly(ctx context.Context, id uuid.UUID) (*entity.Assembly, *pricing.RollupResult, error) {
	assembly, err := s.assemblyRepo.GetWithMembers(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if assembly == nil {
		return nil, nil, apperror.NewNotFoundError("Assembly")
	}

	rollup, err := s.snapshots.ResolveRollup(ctx, id, pricing.Rates{
		USDToILS: s.defaults.RateUSDToILS,
		EURToILS: s.defaults.RateEURToILS,
	})
	if err != nil {
		return nil, nil, err
	}
	return assembly, rollup, nil
}

// UpdateAssembly applies a header edit to an assembly
func (s *CatalogService) UpdateAssembly(ctx context.Context, assembly *entity.Assembly) error {
	if assembly.Name == "" {
		return apperror.NewBadRequestError("Assembly name is required")
	}
	if !assembly.Currency.Valid() {
		return apperror.NewBadRequestError("Invalid currency")
	}
	existing, err := s.assemblyRepo.GetByID(ctx, assembly.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperror.NewNotFoundError("Assembly")
	}
	assembly.CreatedAt = existing.CreatedAt
	return s.assemblyRepo.Update(ctx, assembly)
}

// ReplaceMembers swaps an assembly's member list wholesale
func (s *CatalogService) ReplaceMembers(ctx context.Context, assemblyID uuid.UUID, members []entity.AssemblyComponent) error {
	existing, err := s.assemblyRepo.GetByID(ctx, assemblyID)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperror.NewNotFoundError("Assembly")
	}
	if err := validateMembers(members); err != nil {
		return err
	}
	normalizeMemberPositions(members)
	return s.assemblyRepo.ReplaceMembers(ctx, assemblyID, members)
}

// DeleteAssembly removes an assembly. Quotation items that referenced it keep
// their frozen snapshot.
func (s *CatalogService) DeleteAssembly(ctx context.Context, id uuid.UUID) error {
	existing, err := s.assemblyRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperror.NewNotFoundError("Assembly")
	}
	return s.assemblyRepo.Delete(ctx, id)
}

// ListAssemblies retrieves assemblies with pagination and search
func (s *CatalogService) ListAssemblies(ctx context.Context, params *repository.CatalogFilterParams) (*pagination.PaginatedResult[entity.Assembly], error) {
	params = normalizeCatalogParams(params)
	assemblies, total, err := s.assemblyRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	meta := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(assemblies, meta), nil
}

func validateMembers(members []entity.AssemblyComponent) error {
	for i := range members {
		if members[i].ComponentID == uuid.Nil {
			return apperror.NewBadRequestError("Assembly member requires a component reference")
		}
		if members[i].Quantity <= 0 {
			return apperror.ErrInvalidQuantity
		}
	}
	return nil
}

func normalizeMemberPositions(members []entity.AssemblyComponent) {
	for i := range members {
		members[i].Position = i + 1
	}
}

// CreateLaborType validates and persists a labor type. External labor must
// carry a day rate; internal labor must not, its cost comes from the
// quotation day-rate.
func (s *CatalogService) CreateLaborType(ctx context.Context, laborType *entity.LaborType) error {
	if err := validateLaborType(laborType); err != nil {
		return err
	}
	return s.laborTypeRepo.Create(ctx, laborType)
}

// GetLaborType retrieves a labor type by ID
func (s *CatalogService) GetLaborType(ctx context.Context, id uuid.UUID) (*entity.LaborType, error) {
	laborType, err := s.laborTypeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if laborType == nil {
		return nil, apperror.NewNotFoundError("Labor type")
	}
	return laborType, nil
}

// UpdateLaborType applies a labor type edit
func (s *CatalogService) UpdateLaborType(ctx context.Context, laborType *entity.LaborType) error {
	if err := validateLaborType(laborType); err != nil {
		return err
	}
	existing, err := s.GetLaborType(ctx, laborType.ID)
	if err != nil {
		return err
	}
	laborType.CreatedAt = existing.CreatedAt
	return s.laborTypeRepo.Update(ctx, laborType)
}

// DeleteLaborType removes a labor type from the catalog
func (s *CatalogService) DeleteLaborType(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetLaborType(ctx, id); err != nil {
		return err
	}
	return s.laborTypeRepo.Delete(ctx, id)
}

// ListLaborTypes retrieves labor types with pagination and search
func (s *CatalogService) ListLaborTypes(ctx context.Context, params *repository.CatalogFilterParams) (*pagination.PaginatedResult[entity.LaborType], error) {
	params = normalizeCatalogParams(params)
	laborTypes, total, err := s.laborTypeRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	meta := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(laborTypes, meta), nil
}

func validateLaborType(laborType *entity.LaborType) error {
	if laborType.Name == "" {
		return apperror.NewBadRequestError("Labor type name is required")
	}
	if !laborType.Currency.Valid() {
		return apperror.NewBadRequestError("Invalid currency")
	}
	if laborType.IsInternal {
		if laborType.DayRate != nil {
			return apperror.NewBadRequestError("Internal labor takes its rate from the quotation, not the catalog")
		}
		return nil
	}
	if laborType.DayRate == nil || *laborType.DayRate <= 0 {
		return apperror.NewBadRequestError("External labor requires a positive day rate")
	}
	return nil
}

func normalizeCatalogParams(params *repository.CatalogFilterParams) *repository.CatalogFilterParams {
	if params == nil {
		params = &repository.CatalogFilterParams{}
	}
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()
	return params
}
