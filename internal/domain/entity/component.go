package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/quotecraft/quotecraft-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Component is a catalog part. It is read-only from the pricing engine's
// perspective: quotation items snapshot its values at add time and are not
// affected by later catalog edits.
type Component struct {
	ID           uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	Manufacturer string        `gorm:"size:255;not null" json:"manufacturer"`
	PartNumber   string        `gorm:"size:100;not null;index" json:"part_number"`
	Name         string        `gorm:"size:255;not null" json:"name"`
	Description  string        `gorm:"type:text" json:"description"`
	Cost         float64       `gorm:"type:decimal(15,2);not null" json:"cost"`
	Currency     enum.Currency `gorm:"size:3;not null;default:'USD'" json:"currency"`

	// Optional MSRP data, present independently of whether any quotation uses it.
	MSRPPrice              *float64       `gorm:"type:decimal(15,2)" json:"msrp_price,omitempty"`
	MSRPCurrency           *enum.Currency `gorm:"size:3" json:"msrp_currency,omitempty"`
	PartnerDiscountPercent *float64       `gorm:"type:decimal(5,2)" json:"partner_discount_percent,omitempty"`

	Active    bool           `gorm:"default:true" json:"active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new component
func (c *Component) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Component model
func (Component) TableName() string {
	return "components"
}

// HasMSRP reports whether the component carries usable MSRP pricing data.
func (c *Component) HasMSRP() bool {
	return c.MSRPPrice != nil && *c.MSRPPrice > 0 && c.MSRPCurrency != nil
}
