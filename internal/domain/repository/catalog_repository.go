package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/quotecraft/quotecraft-api/internal/domain/entity"
	"github.com/quotecraft/quotecraft-api/pkg/pagination"
)

// CatalogFilterParams contains filtering parameters for catalog queries
type CatalogFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
}

// ComponentRepository defines the interface for catalog component data
// operations. GetByID returns (nil, nil) for a missing component; the
// snapshot resolver turns that into SnapshotUnavailable.
type ComponentRepository interface {
	Create(ctx context.Context, component *entity.Component) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Component, error)
	Update(ctx context.Context, component *entity.Component) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *CatalogFilterParams) ([]entity.Component, int64, error)
}

// AssemblyRepository defines the interface for catalog assembly data operations
type AssemblyRepository interface {
	Create(ctx context.Context, assembly *entity.Assembly) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Assembly, error)
	GetWithMembers(ctx context.Context, id uuid.UUID) (*entity.Assembly, error)
	Update(ctx context.Context, assembly *entity.Assembly) error
	ReplaceMembers(ctx context.Context, assemblyID uuid.UUID, members []entity.AssemblyComponent) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *CatalogFilterParams) ([]entity.Assembly, int64, error)
}

// LaborTypeRepository defines the interface for catalog labor type data operations
type LaborTypeRepository interface {
	Create(ctx context.Context, laborType *entity.LaborType) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.LaborType, error)
	Update(ctx context.Context, laborType *entity.LaborType) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *CatalogFilterParams) ([]entity.LaborType, int64, error)
}
