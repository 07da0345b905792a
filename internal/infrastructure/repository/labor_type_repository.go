package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/quotecraft/quotecraft-api/internal/domain/entity"
	domainRepo "github.com/quotecraft/quotecraft-api/internal/domain/repository"
	"gorm.io/gorm"
)

type laborTypeRepository struct {
	db *gorm.DB
}

// NewLaborTypeRepository creates a new labor type repository
func NewLaborTypeRepository(db *gorm.DB) domainRepo.LaborTypeRepository {
	return &laborTypeRepository{db: db}
}

func (r *laborTypeRepository) Create(ctx context.Context, laborType *entity.LaborType) error {
	return r.db.WithContext(ctx).Create(laborType).Error
}

func (r *laborTypeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.LaborType, error) {
	var laborType entity.LaborType
	err := r.db.WithContext(ctx).First(&laborType, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &laborType, nil
}

func (r *laborTypeRepository) Update(ctx context.Context, laborType *entity.LaborType) error {
	return r.db.WithContext(ctx).Save(laborType).Error
}

func (r *laborTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.LaborType{}, "id = ?", id).Error
}

func (r *laborTypeRepository) List(ctx context.Context, params *domainRepo.CatalogFilterParams) ([]entity.LaborType, int64, error) {
	var laborTypes []entity.LaborType
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.LaborType{})

	if params.Search != "" {
		query = query.Where("name LIKE ? OR subtype LIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("name ASC").
		Find(&laborTypes).Error

	return laborTypes, total, err
}
