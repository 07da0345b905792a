package repository

import (
	"context"
	"time"

	domainRepo "github.com/quotecraft/quotecraft-api/internal/domain/repository"
	"gorm.io/gorm"
)

type sequenceRepository struct {
	db *gorm.DB
}

// NewSequenceRepository creates a new number sequence repository
func NewSequenceRepository(db *gorm.DB) domainRepo.SequenceRepository {
	return &sequenceRepository{db: db}
}

// Increment allocates the next counter value in a single upsert statement.
// The increment and the read happen atomically at the database, so two
// concurrent allocations can never return the same value.
func (r *sequenceRepository) Increment(ctx context.Context, scope, docType string) (int64, error) {
	now := time.Now()
	var counter int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO number_sequences (scope, doc_type, counter, created_at, updated_at)
		VALUES (?, ?, 1, ?, ?)
		ON CONFLICT (scope, doc_type)
		DO UPDATE SET counter = number_sequences.counter + 1, updated_at = ?
		RETURNING counter`,
		scope, docType, now, now, now).
		Scan(&counter).Error
	if err != nil {
		return 0, err
	}
	return counter, nil
}
