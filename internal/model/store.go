package model

import "github.com/google/uuid"

type StoreType string

const (
	StoreParent StoreType = "PARENT"
	StoreLeaf   StoreType = "LEAF"
)

// Store is either a leaf that owns products directly, or a parent that
// aggregates read-only views over its children. Inventory mutations are
// only valid against leaf stores.
type Store struct {
	BaseModel
	Name     string     `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Type     StoreType  `gorm:"type:varchar(10);not null;default:'LEAF'" json:"type" validate:"required,oneof=PARENT LEAF"`
	ParentID *uuid.UUID `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	Children []Store    `gorm:"foreignKey:ParentID" json:"children,omitempty"`
}

// IsLeaf reports whether the store accepts inventory mutations.
func (s *Store) IsLeaf() bool {
	return s.Type == StoreLeaf
}
