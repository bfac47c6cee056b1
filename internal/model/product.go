package model

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Product struct {
	BaseModel
	StoreID  uuid.UUID                   `gorm:"type:uuid;not null;index" json:"store_id" validate:"uuid_required"`
	SKU      string                      `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Name     string                      `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Category string                      `gorm:"type:varchar(100)" json:"category"`
	Notes    string                      `json:"notes"`
	Keywords datatypes.JSONSlice[string] `json:"keywords,omitempty"`
	Batches  []Batch                     `gorm:"foreignKey:ProductID" json:"batches,omitempty"`

	// User tracking
	CreatedByUserID *string `gorm:"type:varchar(255)" json:"created_by_user_id,omitempty"`
	UpdatedByUserID *string `gorm:"type:varchar(255)" json:"updated_by_user_id,omitempty"`
}

// Batch returns the owned batch with the given id, or nil.
func (p *Product) Batch(id uuid.UUID) *Batch {
	for i := range p.Batches {
		if p.Batches[i].ID == id {
			return &p.Batches[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the product including all batches.
func (p *Product) Clone() Product {
	copied := *p
	copied.Keywords = append(datatypes.JSONSlice[string](nil), p.Keywords...)
	copied.Batches = make([]Batch, len(p.Batches))
	for i := range p.Batches {
		copied.Batches[i] = p.Batches[i].Clone()
	}
	if p.CreatedByUserID != nil {
		s := *p.CreatedByUserID
		copied.CreatedByUserID = &s
	}
	if p.UpdatedByUserID != nil {
		s := *p.UpdatedByUserID
		copied.UpdatedByUserID = &s
	}
	return copied
}
