package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/quotecraft/quotecraft-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Assembly is a named, reusable bill of materials. Its effective unit cost is
// computed by roll-up over the member components and is never stored here.
type Assembly struct {
	ID          uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	Name        string        `gorm:"size:255;not null" json:"name"`
	Description string        `gorm:"type:text" json:"description"`
	Currency    enum.Currency `gorm:"size:3;not null;default:'USD'" json:"currency"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Members []AssemblyComponent `gorm:"foreignKey:AssemblyID" json:"members,omitempty"`
}

// BeforeCreate generates a UUID before creating a new assembly
func (a *Assembly) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Assembly model
func (Assembly) TableName() string {
	return "assemblies"
}

// AssemblyComponent is one (component, quantity) member of an assembly. The
// component reference is non-owning and may dangle after a catalog deletion,
// which makes the assembly incomplete but does not remove the member row.
type AssemblyComponent struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	AssemblyID  uuid.UUID `gorm:"type:uuid;not null;index" json:"assembly_id"`
	ComponentID uuid.UUID `gorm:"type:uuid;not null" json:"component_id"`
	Quantity    float64   `gorm:"type:decimal(15,4);not null" json:"quantity"`
	Position    int       `gorm:"not null;default:1" json:"position"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new assembly member
func (m *AssemblyComponent) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the AssemblyComponent model
func (AssemblyComponent) TableName() string {
	return "assembly_components"
}
