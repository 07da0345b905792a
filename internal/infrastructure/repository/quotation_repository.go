package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/quotecraft/quotecraft-api/internal/domain/entity"
	"github.com/quotecraft/quotecraft-api/internal/domain/enum"
	domainRepo "github.com/quotecraft/quotecraft-api/internal/domain/repository"
	"github.com/quotecraft/quotecraft-api/pkg/apperror"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type quotationRepository struct {
	db *gorm.DB
}

// NewQuotationRepository creates a new quotation repository
func NewQuotationRepository(db *gorm.DB) domainRepo.QuotationRepository {
	return &quotationRepository{db: db}
}

func (r *quotationRepository) Create(ctx context.Context, quotation *entity.Quotation) error {
	return r.db.WithContext(ctx).Create(quotation).Error
}

func (r *quotationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Quotation, error) {
	var quotation entity.Quotation
	err := r.db.WithContext(ctx).First(&quotation, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &quotation, nil
}

func (r *quotationRepository) GetWithTree(ctx context.Context, id uuid.UUID) (*entity.Quotation, error) {
	var quotation entity.Quotation
	err := r.db.WithContext(ctx).
		Preload("Systems", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Preload("Systems.Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		First(&quotation, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &quotation, nil
}

// SaveTree persists the whole quotation tree inside one transaction, guarded
// by a lock version check against the value the caller loaded. Every save
// bumps the stored lock version, so of two editors who loaded the same row
// only the first save lands and the second gets ErrStaleVersion. Rows absent
// from the in-memory tree are deleted, the rest are upserted.
func (r *quotationRepository) SaveTree(ctx context.Context, quotation *entity.Quotation) error {
	loaded := quotation.LockVersion
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.Quotation{}).
			Where("id = ? AND lock_version = ?", quotation.ID, loaded).
			Update("lock_version", loaded+1)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperror.ErrStaleVersion
		}
		quotation.LockVersion = loaded + 1

		if err := tx.Omit("Systems", "Owner").Save(quotation).Error; err != nil {
			return err
		}

		systemIDs := make([]uuid.UUID, 0, len(quotation.Systems))
		itemIDs := make([]uuid.UUID, 0)
		for si := range quotation.Systems {
			if quotation.Systems[si].ID != uuid.Nil {
				systemIDs = append(systemIDs, quotation.Systems[si].ID)
			}
			for ii := range quotation.Systems[si].Items {
				if quotation.Systems[si].Items[ii].ID != uuid.Nil {
					itemIDs = append(itemIDs, quotation.Systems[si].Items[ii].ID)
				}
			}
		}

		// Remove rows dropped from the in-memory tree.
		itemScope := tx.Where("system_id IN (?)",
			tx.Model(&entity.QuotationSystem{}).Select("id").Where("quotation_id = ?", quotation.ID))
		if len(itemIDs) > 0 {
			itemScope = itemScope.Where("id NOT IN ?", itemIDs)
		}
		if err := itemScope.Delete(&entity.QuotationItem{}).Error; err != nil {
			return err
		}

		systemScope := tx.Where("quotation_id = ?", quotation.ID)
		if len(systemIDs) > 0 {
			systemScope = systemScope.Where("id NOT IN ?", systemIDs)
		}
		if err := systemScope.Delete(&entity.QuotationSystem{}).Error; err != nil {
			return err
		}

		for si := range quotation.Systems {
			system := &quotation.Systems[si]
			system.QuotationID = quotation.ID
			if err := tx.Omit("Items").
				Clauses(clause.OnConflict{UpdateAll: true}).
				Create(system).Error; err != nil {
				return err
			}
			for ii := range system.Items {
				item := &system.Items[ii]
				item.SystemID = system.ID
				if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).
					Create(item).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		quotation.LockVersion = loaded
	}
	return err
}

func (r *quotationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("system_id IN (?)",
			tx.Model(&entity.QuotationSystem{}).Select("id").Where("quotation_id = ?", id)).
			Delete(&entity.QuotationItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quotation_id = ?", id).Delete(&entity.QuotationSystem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Quotation{}, "id = ?", id).Error
	})
}

func (r *quotationRepository) List(ctx context.Context, ownerID uuid.UUID, params *domainRepo.QuotationFilterParams) ([]entity.Quotation, int64, error) {
	var quotations []entity.Quotation
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Quotation{})

	if ownerID != uuid.Nil {
		query = query.Where("owner_id = ?", ownerID)
	}

	if params.Search != "" {
		query = query.Where("number LIKE ? OR customer_name LIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.Number != "" {
		query = query.Where("number = ?", params.Number)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting
	sortBy := "created_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder != "" && (params.SortOrder == "ASC" || params.SortOrder == "asc") {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(sortBy + " " + sortOrder).
		Find(&quotations).Error

	return quotations, total, err
}

func (r *quotationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.QuotationStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Quotation{}).
		Where("id = ?", id).
		Update("status", status).Error
}
