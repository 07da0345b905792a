package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/quotecraft/quotecraft-api/internal/domain/entity"
	domainRepo "github.com/quotecraft/quotecraft-api/internal/domain/repository"
	"gorm.io/gorm"
)

type assemblyRepository struct {
	db *gorm.DB
}

// NewAssemblyRepository creates a new assembly repository
func NewAssemblyRepository(db *gorm.DB) domainRepo.AssemblyRepository {
	return &assemblyRepository{db: db}
}

func (r *assemblyRepository) Create(ctx context.Context, assembly *entity.Assembly) error {
	return r.db.WithContext(ctx).Create(assembly).Error
}

func (r *assemblyRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Assembly, error) {
	var assembly entity.Assembly
	err := r.db.WithContext(ctx).First(&assembly, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &assembly, nil
}

func (r *assemblyRepository) GetWithMembers(ctx context.Context, id uuid.UUID) (*entity.Assembly, error) {
	var assembly entity.Assembly
	err := r.db.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&assembly, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &assembly, nil
}

func (r *assemblyRepository) Update(ctx context.Context, assembly *entity.Assembly) error {
	return r.db.WithContext(ctx).Omit("Members").Save(assembly).Error
}

func (r *assemblyRepository) ReplaceMembers(ctx context.Context, assemblyID uuid.UUID, members []entity.AssemblyComponent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("assembly_id = ?", assemblyID).
			Delete(&entity.AssemblyComponent{}).Error; err != nil {
			return err
		}
		for i := range members {
			members[i].ID = uuid.Nil
			members[i].AssemblyID = assemblyID
		}
		if len(members) == 0 {
			return nil
		}
		return tx.Create(&members).Error
	})
}

func (r *assemblyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("assembly_id = ?", id).
			Delete(&entity.AssemblyComponent{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Assembly{}, "id = ?", id).Error
	})
}

func (r *assemblyRepository) List(ctx context.Context, params *domainRepo.CatalogFilterParams) ([]entity.Assembly, int64, error) {
	var assemblies []entity.Assembly
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Assembly{})

	if params.Search != "" {
		query = query.Where("name LIKE ?", "%"+params.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Members").
		Order("name ASC").
		Find(&assemblies).Error

	return assemblies, total, err
}
