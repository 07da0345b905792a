package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/quotecraft/quotecraft-api/internal/domain/entity"
	domainRepo "github.com/quotecraft/quotecraft-api/internal/domain/repository"
	"gorm.io/gorm"
)

type componentRepository struct {
	db *gorm.DB
}

// NewComponentRepository creates a new component repository
func NewComponentRepository(db *gorm.DB) domainRepo.ComponentRepository {
	return &componentRepository{db: db}
}

func (r *componentRepository) Create(ctx context.Context, component *entity.Component) error {
	return r.db.WithContext(ctx).Create(component).Error
}

func (r *componentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Component, error) {
	var component entity.Component
	err := r.db.WithContext(ctx).First(&component, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &component, nil
}

func (r *componentRepository) Update(ctx context.Context, component *entity.Component) error {
	return r.db.WithContext(ctx).Save(component).Error
}

func (r *componentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Component{}, "id = ?", id).Error
}

func (r *componentRepository) List(ctx context.Context, params *domainRepo.CatalogFilterParams) ([]entity.Component, int64, error) {
	var components []entity.Component
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Component{})

	if params.Search != "" {
		query = query.Where("name LIKE ? OR part_number LIKE ? OR manufacturer LIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%", "%"+params.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("manufacturer ASC, part_number ASC").
		Find(&components).Error

	return components, total, err
}
