package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/quotecraft/quotecraft-api/internal/domain/enum"
	"gorm.io/gorm"
)

// LaborType is a catalog labor category. Internal labor carries no rate of its
// own: items created from it track the owning quotation's day-rate live.
// External labor must carry a fixed rate that is snapshotted at add time.
type LaborType struct {
	ID          uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	Name        string        `gorm:"size:255;not null" json:"name"`
	Subtype     string        `gorm:"size:100" json:"subtype"`
	IsInternal  bool          `gorm:"default:false" json:"is_internal"`
	DayRate     *float64      `gorm:"type:decimal(15,2)" json:"day_rate,omitempty"`
	Currency    enum.Currency `gorm:"size:3;not null;default:'ILS'" json:"currency"`
	Description string        `gorm:"type:text" json:"description"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new labor type
func (l *LaborType) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the LaborType model
func (LaborType) TableName() string {
	return "labor_types"
}
