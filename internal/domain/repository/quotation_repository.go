package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/quotecraft/quotecraft-api/internal/domain/entity"
	"github.com/quotecraft/quotecraft-api/internal/domain/enum"
	"github.com/quotecraft/quotecraft-api/pkg/pagination"
)

// QuotationRepository defines the interface for quotation data operations.
// SaveTree is the only conditional write: it persists the whole tree only if
// the stored lock version still matches the one carried on the quotation from
// its load, and returns apperror.ErrStaleVersion otherwise. On success the
// quotation's lock version is advanced in place.
type QuotationRepository interface {
	Create(ctx context.Context, quotation *entity.Quotation) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Quotation, error)
	GetWithTree(ctx context.Context, id uuid.UUID) (*entity.Quotation, error)
	SaveTree(ctx context.Context, quotation *entity.Quotation) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, ownerID uuid.UUID, params *QuotationFilterParams) ([]entity.Quotation, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.QuotationStatus) error
}

// QuotationFilterParams contains filtering parameters for quotation queries
type QuotationFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.QuotationStatus
	Number     string
	SortBy     string
	SortOrder  string
}
