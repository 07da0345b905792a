package entity

import "time"

// NumberSequence is a per-scope, per-document-type monotonically increasing
// counter. Allocation increments and reads in a single statement so that
// concurrent allocators never observe the same value.
type NumberSequence struct {
	ID      uint   `gorm:"primary_key" json:"id"`
	Scope   string `gorm:"size:100;not null;uniqueIndex:idx_number_sequences_scope_type" json:"scope"`
	DocType string `gorm:"size:50;not null;uniqueIndex:idx_number_sequences_scope_type" json:"doc_type"`
	Counter int64  `gorm:"not null;default:0" json:"counter"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the NumberSequence model
func (NumberSequence) TableName() string {
	return "number_sequences"
}
