package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/quotecraft/quotecraft-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Quotation is the header aggregate of a priced proposal. Its exchange rates
// are fixed multipliers captured at creation time, never refreshed from a live
// source, and its totals are derived bottom-up from the systems' items.
type Quotation struct {
	ID           uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID      uuid.UUID            `gorm:"type:uuid;not null;index;uniqueIndex:idx_quotations_owner_number_version" json:"owner_id"`
	Number       string               `gorm:"size:100;not null;uniqueIndex:idx_quotations_owner_number_version" json:"number"`
	Version      int                  `gorm:"not null;default:1;uniqueIndex:idx_quotations_owner_number_version" json:"version"`
	Status       enum.QuotationStatus `gorm:"default:0" json:"status"`
	CustomerName string               `gorm:"size:255" json:"customer_name"`

	// LockVersion counts saves of this row's tree. Unlike Version, which only
	// moves when a new revision document is cut, it is bumped on every save and
	// backs the concurrent-editor check.
	LockVersion int `gorm:"not null;default:1" json:"lock_version"`

	// Pricing parameters. Each one drives its own narrow recalculation pass.
	RateUSDToILS  float64 `gorm:"type:decimal(10,4);not null" json:"rate_usd_to_ils"`
	RateEURToILS  float64 `gorm:"type:decimal(10,4);not null" json:"rate_eur_to_ils"`
	MarginPercent float64 `gorm:"type:decimal(5,2);default:0" json:"margin_percent"`
	DayRateILS    float64 `gorm:"type:decimal(15,2);default:0" json:"day_rate_ils"`
	UseMSRP       bool    `gorm:"default:false" json:"use_msrp"`

	// Derived totals, never edited independently.
	TotalCost  Amount `gorm:"embedded;embeddedPrefix:total_cost_" json:"total_cost"`
	TotalPrice Amount `gorm:"embedded;embeddedPrefix:total_price_" json:"total_price"`

	Note      *string        `gorm:"type:text" json:"note,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Owner   User              `gorm:"foreignKey:OwnerID" json:"-"`
	Systems []QuotationSystem `gorm:"foreignKey:QuotationID" json:"systems,omitempty"`
}

// BeforeCreate generates a UUID before creating a new quotation
func (q *Quotation) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	if q.LockVersion == 0 {
		q.LockVersion = 1
	}
	return nil
}

// TableName returns the table name for the Quotation model
func (Quotation) TableName() string {
	return "quotations"
}

// QuotationSystem is a named grouping of line items within a quotation. Its
// totals are the sum of its items' totals.
type QuotationSystem struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	QuotationID  uuid.UUID `gorm:"type:uuid;not null;index" json:"quotation_id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	DisplayOrder int       `gorm:"not null;default:1" json:"display_order"`

	TotalCost  Amount `gorm:"embedded;embeddedPrefix:total_cost_" json:"total_cost"`
	TotalPrice Amount `gorm:"embedded;embeddedPrefix:total_price_" json:"total_price"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Items []QuotationItem `gorm:"foreignKey:SystemID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new quotation system
func (s *QuotationSystem) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the QuotationSystem model
func (QuotationSystem) TableName() string {
	return "quotation_systems"
}

// QuotationItem is the polymorphic line item, discriminated by ItemType.
// Catalog references are non-owning: the referenced component, assembly or
// labor type may change or disappear without altering the snapshotted costs,
// except for internal labor whose cost tracks the quotation day-rate.
type QuotationItem struct {
	ID           uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	SystemID     uuid.UUID     `gorm:"type:uuid;not null;index" json:"system_id"`
	ItemType     enum.ItemType `gorm:"size:20;not null" json:"item_type"`
	Name         string        `gorm:"size:255;not null" json:"name"`
	Description  string        `gorm:"type:text" json:"description"`
	DisplayOrder int           `gorm:"not null;default:1" json:"display_order"`
	Quantity     float64       `gorm:"type:decimal(15,4);not null" json:"quantity"`

	// Snapshotted cost. OriginCurrency marks which of the three fields was the
	// source; the other two are always re-derived from it on a rate change.
	OriginCurrency enum.Currency `gorm:"size:3;not null" json:"origin_currency"`
	UnitCost       Amount        `gorm:"embedded;embeddedPrefix:unit_cost_" json:"unit_cost"`

	// Item-level pricing overrides. Nil means the quotation default applies;
	// the effective mode is resolved at read time, never cached.
	MarginPercent *float64 `gorm:"type:decimal(5,2)" json:"margin_percent,omitempty"`
	UseMSRP       *bool    `json:"use_msrp,omitempty"`

	// MSRP data snapshotted from the catalog, when the source carried it.
	MSRPPrice           *float64       `gorm:"type:decimal(15,2)" json:"msrp_price,omitempty"`
	MSRPCurrency        *enum.Currency `gorm:"size:3" json:"msrp_currency,omitempty"`
	MSRPDiscountPercent *float64       `gorm:"type:decimal(5,2)" json:"msrp_discount_percent,omitempty"`

	// Derived fields.
	UnitPrice  Amount `gorm:"embedded;embeddedPrefix:unit_price_" json:"unit_price"`
	TotalCost  Amount `gorm:"embedded;embeddedPrefix:total_cost_" json:"total_cost"`
	TotalPrice Amount `gorm:"embedded;embeddedPrefix:total_price_" json:"total_price"`

	// Non-owning catalog references.
	ComponentID *uuid.UUID `gorm:"type:uuid" json:"component_id,omitempty"`
	AssemblyID  *uuid.UUID `gorm:"type:uuid" json:"assembly_id,omitempty"`
	LaborTypeID *uuid.UUID `gorm:"type:uuid" json:"labor_type_id,omitempty"`

	// Labor variant fields.
	LaborSubtype    string `gorm:"size:100" json:"labor_subtype,omitempty"`
	IsInternalLabor bool   `gorm:"default:false" json:"is_internal_labor"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new quotation item
func (i *QuotationItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the QuotationItem model
func (QuotationItem) TableName() string {
	return "quotation_items"
}
