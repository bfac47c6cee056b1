package model

import "github.com/google/uuid"

// Snapshot is the "before" image a rollback needs, captured synchronously
// before the forward mutation commits. Exactly one payload field is set,
// matching the entry's action kind: Quantity for INBOUND/OUTBOUND,
// Original for ADJUST, Deleted for DELETE, Imported for IMPORT.
type Snapshot struct {
	Quantity *QuantityDelta  `json:"quantity,omitempty"`
	Original *OriginalRecord `json:"original,omitempty"`
	Deleted  *DeletedProduct `json:"deleted,omitempty"`
	Imported *ImportedIDs    `json:"imported,omitempty"`
}

// QuantityDelta records the unit and amount a stock movement applied.
type QuantityDelta struct {
	ProductID uuid.UUID `json:"product_id"`
	BatchID   uuid.UUID `json:"batch_id"`
	Unit      Unit      `json:"unit"`
	Qty       int       `json:"qty"`
}

// OriginalRecord holds the pre-edit copy of an adjusted record. Exactly
// one of Product or Batch is set.
type OriginalRecord struct {
	Product *Product `json:"product,omitempty"`
	Batch   *Batch   `json:"batch,omitempty"`
}

// DeletedProduct holds the full pre-delete product, batches included.
type DeletedProduct struct {
	Product Product `json:"product"`
}

// ImportedIDs lists what a bulk import created: either product ids, or a
// single batch id (with its parent product) for single-batch imports.
type ImportedIDs struct {
	ProductIDs []uuid.UUID `json:"product_ids,omitempty"`
	ProductID  *uuid.UUID  `json:"product_id,omitempty"`
	BatchIDs   []uuid.UUID `json:"batch_ids,omitempty"`
}
