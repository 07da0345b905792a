package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/quotecraft/quotecraft-api/internal/domain/entity"
	"github.com/quotecraft/quotecraft-api/internal/domain/enum"
	"github.com/quotecraft/quotecraft-api/internal/domain/pricing"
	"github.com/quotecraft/quotecraft-api/internal/domain/repository"
	"github.com/quotecraft/quotecraft-api/pkg/apperror"
	"github.com/quotecraft/quotecraft-api/pkg/pagination"
	"github.com/tiendc/go-deepcopy"
)

// PricingDefaults are the instance-wide starting parameters applied to new
// quotations when the caller does not supply explicit values.
type PricingDefaults struct {
	MarginPercent float64
	DayRateILS    float64
	RateUSDToILS  float64
	RateEURToILS  float64
}

// QuotationService handles quotation lifecycle and parameter recalculation
type QuotationService struct {
	quotationRepo repository.QuotationRepository
	numbering     *NumberingService
	defaults      PricingDefaults
}

// NewQuotationService creates a new quotation service
func NewQuotationService(quotationRepo repository.QuotationRepository, numbering *NumberingService, defaults PricingDefaults) *QuotationService {
	return &QuotationService{
		quotationRepo: quotationRepo,
		numbering:     numbering,
		defaults:      defaults,
	}
}

// CreateQuotationInput contains the data needed to create a quotation.
// Zero-valued pricing parameters fall back to the instance defaults.
type CreateQuotationInput struct {
	OwnerID       uuid.UUID
	CustomerName  string
	RateUSDToILS  float64
	RateEURToILS  float64
	MarginPercent *float64
	DayRateILS    *float64
	UseMSRP       bool
	Note          *string
	SystemNames   []string
}

// Create allocates a number and persists a new draft quotation at version 1.
func (s *QuotationService) Create(ctx context.Context, input CreateQuotationInput) (*entity.Quotation, error) {
	quotation := &entity.Quotation{
		OwnerID:       input.OwnerID,
		CustomerName:  input.CustomerName,
		Version:       1,
		Status:        enum.QuotationStatusDraft,
		RateUSDToILS:  input.RateUSDToILS,
		RateEURToILS:  input.RateEURToILS,
		MarginPercent: s.defaults.MarginPercent,
		DayRateILS:    s.defaults.DayRateILS,
		UseMSRP:       input.UseMSRP,
		Note:          input.Note,
	}
	if quotation.RateUSDToILS == 0 {
		quotation.RateUSDToILS = s.defaults.RateUSDToILS
	}
	if quotation.RateEURToILS == 0 {
		quotation.RateEURToILS = s.defaults.RateEURToILS
	}
	if input.MarginPercent != nil {
		quotation.MarginPercent = *input.MarginPercent
	}
	if input.DayRateILS != nil {
		quotation.DayRateILS = *input.DayRateILS
	}

	if err := pricing.RatesOf(quotation).Validate(); err != nil {
		return nil, err
	}
	if quotation.MarginPercent < 0 || quotation.MarginPercent >= 100 {
		return nil, apperror.NewBadRequestError("Margin percent must be in [0, 100)")
	}

	quotation.Number = s.numbering.Next(ctx, input.OwnerID.String(), DocTypeQuotation)

	for i, name := range input.SystemNames {
		quotation.Systems = append(quotation.Systems, entity.QuotationSystem{
			Name:         name,
			DisplayOrder: i + 1,
		})
	}

	if err := s.quotationRepo.Create(ctx, quotation); err != nil {
		return nil, err
	}
	return quotation, nil
}

// GetQuotation retrieves a quotation with its full system/item tree
func (s *QuotationService) GetQuotation(ctx context.Context, id uuid.UUID) (*entity.Quotation, error) {
	quotation, err := s.quotationRepo.GetWithTree(ctx, id)
	if err != nil {
		return nil, err
	}
	if quotation == nil {
		return nil, apperror.NewNotFoundError("Quotation")
	}
	return quotation, nil
}

// ListQuotations retrieves an owner's quotations with pagination and filtering
func (s *QuotationService) ListQuotations(ctx context.Context, ownerID uuid.UUID, params *repository.QuotationFilterParams) (*pagination.PaginatedResult[entity.Quotation], error) {
	if params == nil {
		params = &repository.QuotationFilterParams{}
	}
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	quotations, total, err := s.quotationRepo.List(ctx, ownerID, params)
	if err != nil {
		return nil, err
	}

	meta := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(quotations, meta), nil
}

// UpdateParametersInput carries header-level edits. Nil fields are unchanged.
// Version must be the version the editor loaded; a mismatch, including an
// omitted version, aborts the update.
type UpdateParametersInput struct {
	ID            uuid.UUID
	Version       int
	CustomerName  *string
	Note          *string
	RateUSDToILS  *float64
	RateEURToILS  *float64
	MarginPercent *float64
	DayRateILS    *float64
	UseMSRP       *bool
}

// UpdateParameters applies header edits and runs exactly the recalculation
// passes the changed parameters call for, then recomputes totals bottom-up.
func (s *QuotationService) UpdateParameters(ctx context.Context, input UpdateParametersInput) (*entity.Quotation, error) {
	quotation, err := s.GetQuotation(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if input.Version != quotation.Version {
		return nil, apperror.ErrStaleVersion
	}

	if input.CustomerName != nil {
		quotation.CustomerName = *input.CustomerName
	}
	if input.Note != nil {
		quotation.Note = input.Note
	}

	ratesChanged := false
	if input.RateUSDToILS != nil && *input.RateUSDToILS != quotation.RateUSDToILS {
		quotation.RateUSDToILS = *input.RateUSDToILS
		ratesChanged = true
	}
	if input.RateEURToILS != nil && *input.RateEURToILS != quotation.RateEURToILS {
		quotation.RateEURToILS = *input.RateEURToILS
		ratesChanged = true
	}

	marginChanged := input.MarginPercent != nil && *input.MarginPercent != quotation.MarginPercent
	if marginChanged {
		if *input.MarginPercent < 0 || *input.MarginPercent >= 100 {
			return nil, apperror.NewBadRequestError("Margin percent must be in [0, 100)")
		}
		quotation.MarginPercent = *input.MarginPercent
	}

	msrpChanged := input.UseMSRP != nil && *input.UseMSRP != quotation.UseMSRP
	if msrpChanged {
		quotation.UseMSRP = *input.UseMSRP
	}

	dayRateChanged := input.DayRateILS != nil && *input.DayRateILS != quotation.DayRateILS
	if dayRateChanged {
		quotation.DayRateILS = *input.DayRateILS
	}

	if ratesChanged {
		if err := pricing.ApplyRateChange(quotation); err != nil {
			return nil, err
		}
	}
	if marginChanged {
		if err := pricing.ApplyMarginChange(quotation); err != nil {
			return nil, err
		}
	}
	if msrpChanged {
		if err := pricing.ApplyMSRPToggle(quotation); err != nil {
			return nil, err
		}
	}
	if dayRateChanged {
		if err := pricing.ApplyDayRateChange(quotation); err != nil {
			return nil, err
		}
	}

	if err := s.quotationRepo.SaveTree(ctx, quotation); err != nil {
		return nil, err
	}
	return quotation, nil
}

// NewVersion deep-copies the quotation tree into a fresh draft under the same
// number with the version incremented. The source quotation is left untouched.
func (s *QuotationService) NewVersion(ctx context.Context, id uuid.UUID) (*entity.Quotation, error) {
	source, err := s.GetQuotation(ctx, id)
	if err != nil {
		return nil, err
	}

	var next entity.Quotation
	if err := deepcopy.Copy(&next, source); err != nil {
		return nil, err
	}

	next.ID = uuid.New()
	next.Version = source.Version + 1
	next.LockVersion = 1
	next.Status = enum.QuotationStatusDraft
	for si := range next.Systems {
		system := &next.Systems[si]
		system.ID = uuid.New()
		system.QuotationID = next.ID
		for ii := range system.Items {
			system.Items[ii].ID = uuid.New()
			system.Items[ii].SystemID = system.ID
		}
	}

	if err := s.quotationRepo.Create(ctx, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

// UpdateStatus moves a quotation to a new lifecycle status
func (s *QuotationService) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.QuotationStatus) error {
	if !status.Valid() {
		return apperror.NewBadRequestError("Invalid quotation status")
	}
	quotation, err := s.quotationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if quotation == nil {
		return apperror.NewNotFoundError("Quotation")
	}
	return s.quotationRepo.UpdateStatus(ctx, id, status)
}

// Delete removes a quotation and its tree
func (s *QuotationService) Delete(ctx context.Context, id uuid.UUID) error {
	quotation, err := s.quotationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if quotation == nil {
		return apperror.NewNotFoundError("Quotation")
	}
	return s.quotationRepo.Delete(ctx, id)
}
