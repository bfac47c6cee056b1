package model

import (
	"time"

	"github.com/google/uuid"
)

// Unit names the side of a batch quantity a mutation acts on.
type Unit string

const (
	UnitBig   Unit = "BIG"
	UnitSmall Unit = "SMALL"
)

// Batch is one lot of a product. Quantities are tracked in two units at
// once (e.g. boxes and blisters); ConversionRate is the number of small
// units per big unit and is only used when totalling a product's stock.
type Batch struct {
	BaseModel
	ProductID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	LotNumber      string     `gorm:"type:varchar(100)" json:"lot_number"`
	ExpiryDate     *time.Time `gorm:"type:date" json:"expiry_date,omitempty"`
	QuantityBig    int        `gorm:"not null;default:0" json:"quantity_big" validate:"gte=0"`
	QuantitySmall  int        `gorm:"not null;default:0" json:"quantity_small" validate:"gte=0"`
	UnitBigLabel   string     `gorm:"type:varchar(20)" json:"unit_big_label"`
	UnitSmallLabel string     `gorm:"type:varchar(20)" json:"unit_small_label"`
	ConversionRate int        `gorm:"not null;default:1" json:"conversion_rate" validate:"gt=0"`
	Price          int64      `gorm:"default:0" json:"price"`
	Notes          string     `json:"notes"`
}

// Quantity returns the count held in the given unit.
func (b *Batch) Quantity(unit Unit) int {
	if unit == UnitSmall {
		return b.QuantitySmall
	}
	return b.QuantityBig
}

// SetQuantity overwrites the count held in the given unit.
func (b *Batch) SetQuantity(unit Unit, qty int) {
	if unit == UnitSmall {
		b.QuantitySmall = qty
		return
	}
	b.QuantityBig = qty
}

// Clone returns a deep copy of the batch.
func (b *Batch) Clone() Batch {
	copied := *b
	if b.ExpiryDate != nil {
		t := *b.ExpiryDate
		copied.ExpiryDate = &t
	}
	return copied
}
