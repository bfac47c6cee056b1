package audit

import (
	"go-pharmacy-stock/internal/model"

	"github.com/google/uuid"
)

// Snapshot capture. Each constructor copies exactly what the matching
// rollback needs, nothing more; callers must capture before applying the
// forward mutation so the "before" image cannot be corrupted by it.

// CaptureQuantity records the delta an INBOUND or OUTBOUND applied.
func CaptureQuantity(productID, batchID uuid.UUID, unit model.Unit, qty int) model.Snapshot {
	return model.Snapshot{Quantity: &model.QuantityDelta{
		ProductID: productID,
		BatchID:   batchID,
		Unit:      unit,
		Qty:       qty,
	}}
}

// CaptureBatchOriginal deep-copies a batch before an ADJUST overwrites it.
func CaptureBatchOriginal(batch model.Batch) model.Snapshot {
	b := batch.Clone()
	return model.Snapshot{Original: &model.OriginalRecord{Batch: &b}}
}

// CaptureProductOriginal deep-copies a product before an ADJUST
// overwrites it. Batches ride along so a whole-record restore is exact.
func CaptureProductOriginal(product model.Product) model.Snapshot {
	p := product.Clone()
	return model.Snapshot{Original: &model.OriginalRecord{Product: &p}}
}

// CaptureDeleted deep-copies the full product, batches included, before a
// DELETE removes it.
func CaptureDeleted(product model.Product) model.Snapshot {
	return model.Snapshot{Deleted: &model.DeletedProduct{Product: product.Clone()}}
}

// CaptureImportedProducts lists the product ids a bulk import created.
func CaptureImportedProducts(productIDs []uuid.UUID) model.Snapshot {
	ids := append([]uuid.UUID(nil), productIDs...)
	return model.Snapshot{Imported: &model.ImportedIDs{ProductIDs: ids}}
}

// CaptureImportedBatch records a single-batch import into an existing
// product.
func CaptureImportedBatch(productID, batchID uuid.UUID) model.Snapshot {
	pid := productID
	return model.Snapshot{Imported: &model.ImportedIDs{
		ProductID: &pid,
		BatchIDs:  []uuid.UUID{batchID},
	}}
}
