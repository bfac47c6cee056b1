package audit

import (
	"testing"

	"go-pharmacy-stock/internal/apperr"
	"go-pharmacy-stock/internal/inventory"
	"go-pharmacy-stock/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rootActor = model.Actor{ID: uuid.New(), Role: model.RoleRoot, LogPermission: model.LogPermissionA}

func seedProduct(name string, batches ...model.Batch) model.Product {
	p := model.Product{Name: name, SKU: name}
	p.ID = uuid.New()
	for i := range batches {
		batches[i].ID = uuid.New()
		batches[i].ProductID = p.ID
		if batches[i].ConversionRate == 0 {
			batches[i].ConversionRate = 10
		}
	}
	p.Batches = batches
	return p
}

func loggedEntry(kind model.ActionKind, snap model.Snapshot) (*model.MutationLogEntry, *Log) {
	e := &model.MutationLogEntry{
		Kind:         kind,
		OperatorID:   uuid.New(),
		OperatorRole: model.RoleStaff,
		Snapshot:     snap,
	}
	e.ID = uuid.New()
	return e, NewLog([]*model.MutationLogEntry{e})
}

func TestRevoke_Outbound_RestoresQuantity(t *testing.T) {
	p := seedProduct("amoxicillin", model.Batch{QuantityBig: 10})
	agg := inventory.New([]model.Product{p})
	batchID := p.Batches[0].ID

	// Forward outbound of 3 already applied.
	require.NoError(t, agg.ApplyDelta(p.ID, batchID, model.UnitBig, -3))

	entry, log := loggedEntry(model.ActionOutbound, CaptureQuantity(p.ID, batchID, model.UnitBig, 3))
	engine := NewEngine(agg, log)

	require.NoError(t, engine.Revoke(entry.ID, rootActor))
	qty, err := agg.Quantity(p.ID, batchID, model.UnitBig)
	require.NoError(t, err)
	assert.Equal(t, 10, qty)
	assert.True(t, entry.Revoked)
}

func TestRevoke_Twice_AlreadyRevoked(t *testing.T) {
	p := seedProduct("amoxicillin", model.Batch{QuantityBig: 7})
	agg := inventory.New([]model.Product{p})
	batchID := p.Batches[0].ID

	entry, log := loggedEntry(model.ActionOutbound, CaptureQuantity(p.ID, batchID, model.UnitBig, 3))
	engine := NewEngine(agg, log)

	require.NoError(t, engine.Revoke(entry.ID, rootActor))
	err := engine.Revoke(entry.ID, rootActor)
	assert.ErrorIs(t, err, apperr.ErrAlreadyRevoked)

	// The second attempt did not touch the stock again.
	qty, _ := agg.Quantity(p.ID, batchID, model.UnitBig)
	assert.Equal(t, 10, qty)
}

func TestRevoke_Inbound_InsufficientAfterLaterOutbound(t *testing.T) {
	// Inbound of 5 brought the batch to 8; a later outbound left only 3.
	p := seedProduct("ibuprofen", model.Batch{QuantityBig: 3})
	agg := inventory.New([]model.Product{p})
	batchID := p.Batches[0].ID

	entry, log := loggedEntry(model.ActionInbound, CaptureQuantity(p.ID, batchID, model.UnitBig, 5))
	engine := NewEngine(agg, log)

	err := engine.Revoke(entry.ID, rootActor)
	assert.ErrorIs(t, err, apperr.ErrInsufficientStock)

	// Nothing was mutated and the entry is still pending.
	qty, _ := agg.Quantity(p.ID, batchID, model.UnitBig)
	assert.Equal(t, 3, qty)
	assert.False(t, entry.Revoked)
}

func TestRevoke_Inbound_Succeeds(t *testing.T) {
	p := seedProduct("ibuprofen", model.Batch{QuantityBig: 8})
	agg := inventory.New([]model.Product{p})
	batchID := p.Batches[0].ID

	entry, log := loggedEntry(model.ActionInbound, CaptureQuantity(p.ID, batchID, model.UnitBig, 5))
	engine := NewEngine(agg, log)

	require.NoError(t, engine.Revoke(entry.ID, rootActor))
	qty, _ := agg.Quantity(p.ID, batchID, model.UnitBig)
	assert.Equal(t, 3, qty)
}

func TestRevoke_Adjust_RestoresBatch(t *testing.T) {
	p := seedProduct("cetirizine", model.Batch{QuantityBig: 5, LotNumber: "L1", Price: 1200})
	agg := inventory.New([]model.Product{p})
	original := p.Batches[0]

	// Forward adjust already applied.
	changed := original.Clone()
	changed.QuantityBig = 40
	changed.LotNumber = "L9"
	require.NoError(t, agg.ReplaceBatch(p.ID, changed))

	entry, log := loggedEntry(model.ActionAdjust, CaptureBatchOriginal(original))
	engine := NewEngine(agg, log)

	require.NoError(t, engine.Revoke(entry.ID, rootActor))
	got, err := agg.Product(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Batches[0].QuantityBig)
	assert.Equal(t, "L1", got.Batches[0].LotNumber)
	assert.Equal(t, int64(1200), got.Batches[0].Price)
}

func TestRevoke_Adjust_RecordDeletedMeanwhile(t *testing.T) {
	p := seedProduct("cetirizine", model.Batch{QuantityBig: 5})
	agg := inventory.New([]model.Product{p})
	original := p.Batches[0]

	_, err := agg.RemoveProduct(p.ID)
	require.NoError(t, err)

	entry, log := loggedEntry(model.ActionAdjust, CaptureBatchOriginal(original))
	engine := NewEngine(agg, log)

	err = engine.Revoke(entry.ID, rootActor)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.False(t, entry.Revoked)
}

func TestRevoke_Delete_RestoresIdenticalProduct(t *testing.T) {
	p := seedProduct("loratadine",
		model.Batch{QuantityBig: 3, LotNumber: "A"},
		model.Batch{QuantitySmall: 8, LotNumber: "B"},
	)
	agg := inventory.New([]model.Product{p})

	removed, err := agg.RemoveProduct(p.ID)
	require.NoError(t, err)

	entry, log := loggedEntry(model.ActionDelete, CaptureDeleted(removed))
	engine := NewEngine(agg, log)

	require.NoError(t, engine.Revoke(entry.ID, rootActor))
	got, err := agg.Product(p.ID)
	require.NoError(t, err)
	require.Len(t, got.Batches, 2)
	assert.Equal(t, removed.Batches[0].ID, got.Batches[0].ID)
	assert.Equal(t, removed.Batches[1].ID, got.Batches[1].ID)
	assert.Equal(t, 3, got.Batches[0].QuantityBig)
	assert.Equal(t, 8, got.Batches[1].QuantitySmall)
}

func TestRevoke_Delete_DoesNotResurrectEarlierRemovedBatch(t *testing.T) {
	p := seedProduct("loratadine", model.Batch{QuantityBig: 3}, model.Batch{QuantityBig: 9})
	agg := inventory.New([]model.Product{p})
	keptID, removedID := p.Batches[0].ID, p.Batches[1].ID

	// A single-batch import was revoked first, taking its batch with it.
	agg.RemoveBatchesByIDs([]uuid.UUID{removedID})

	deleted, err := agg.RemoveProduct(p.ID)
	require.NoError(t, err)
	entry, log := loggedEntry(model.ActionDelete, CaptureDeleted(deleted))
	engine := NewEngine(agg, log)

	// Rollback restores exactly the batch set the snapshot captured, not
	// batches that were gone before the deletion.
	require.NoError(t, engine.Revoke(entry.ID, rootActor))
	got, err := agg.Product(p.ID)
	require.NoError(t, err)
	require.Len(t, got.Batches, 1)
	assert.Equal(t, keptID, got.Batches[0].ID)
}

func TestRevoke_Delete_CollisionConflict(t *testing.T) {
	p := seedProduct("loratadine", model.Batch{QuantityBig: 3})
	agg := inventory.New([]model.Product{p})

	// The product was recreated under the same id before the revoke.
	entry, log := loggedEntry(model.ActionDelete, CaptureDeleted(p))
	engine := NewEngine(agg, log)

	err := engine.Revoke(entry.ID, rootActor)
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.False(t, entry.Revoked)
}

func TestRevoke_Import_RemovesExactlyImportedProducts(t *testing.T) {
	existing := seedProduct("existing", model.Batch{QuantityBig: 1})
	imported := []model.Product{
		seedProduct("imp-1", model.Batch{}),
		seedProduct("imp-2", model.Batch{}),
		seedProduct("imp-3", model.Batch{}),
		seedProduct("imp-4", model.Batch{}),
	}
	agg := inventory.New(append([]model.Product{existing}, imported...))

	ids := make([]uuid.UUID, len(imported))
	for i, p := range imported {
		ids[i] = p.ID
	}
	entry, log := loggedEntry(model.ActionImport, CaptureImportedProducts(ids))
	engine := NewEngine(agg, log)

	require.NoError(t, engine.Revoke(entry.ID, rootActor))
	assert.Equal(t, 1, agg.Len())
	_, err := agg.Product(existing.ID)
	assert.NoError(t, err)
}

func TestRevoke_Import_BatchIntoExistingProduct(t *testing.T) {
	p := seedProduct("existing", model.Batch{QuantityBig: 2})
	agg := inventory.New([]model.Product{p})

	added := model.Batch{QuantityBig: 5, ConversionRate: 10}
	added.ID = uuid.New()
	added.ProductID = p.ID
	require.NoError(t, agg.AddBatch(p.ID, added))

	entry, log := loggedEntry(model.ActionImport, CaptureImportedBatch(p.ID, added.ID))
	engine := NewEngine(agg, log)

	require.NoError(t, engine.Revoke(entry.ID, rootActor))
	got, err := agg.Product(p.ID)
	require.NoError(t, err)
	require.Len(t, got.Batches, 1)
	assert.Equal(t, p.Batches[0].ID, got.Batches[0].ID)
}

func TestRevoke_Import_MissingIDsStillSucceeds(t *testing.T) {
	agg := inventory.New(nil)

	entry, log := loggedEntry(model.ActionImport, CaptureImportedProducts([]uuid.UUID{uuid.New(), uuid.New()}))
	engine := NewEngine(agg, log)

	require.NoError(t, engine.Revoke(entry.ID, rootActor))
	assert.True(t, entry.Revoked)
}

func TestRevoke_Unauthorized_LeavesEverythingUntouched(t *testing.T) {
	p := seedProduct("amoxicillin", model.Batch{QuantityBig: 7})
	agg := inventory.New([]model.Product{p})
	batchID := p.Batches[0].ID

	entry, log := loggedEntry(model.ActionOutbound, CaptureQuantity(p.ID, batchID, model.UnitBig, 3))
	engine := NewEngine(agg, log)

	// Tier D actor trying to revoke someone else's entry.
	stranger := model.Actor{ID: uuid.New(), Role: model.RoleBoss, LogPermission: model.LogPermissionD}
	err := engine.Revoke(entry.ID, stranger)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	qty, _ := agg.Quantity(p.ID, batchID, model.UnitBig)
	assert.Equal(t, 7, qty)
	assert.False(t, entry.Revoked)
}

func TestRevoke_UnknownKind(t *testing.T) {
	agg := inventory.New(nil)
	entry, log := loggedEntry(model.ActionKind("TRANSFER"), model.Snapshot{})
	engine := NewEngine(agg, log)

	err := engine.Revoke(entry.ID, rootActor)
	assert.ErrorIs(t, err, apperr.ErrUnknownActionKind)
	assert.False(t, entry.Revoked)
}

func TestRevoke_MissingSnapshotPayload(t *testing.T) {
	agg := inventory.New(nil)
	entry, log := loggedEntry(model.ActionOutbound, model.Snapshot{})
	engine := NewEngine(agg, log)

	err := engine.Revoke(entry.ID, rootActor)
	assert.ErrorIs(t, err, apperr.ErrUnknownActionKind)
}

func TestRevoke_EntryNotFound(t *testing.T) {
	engine := NewEngine(inventory.New(nil), NewLog(nil))
	assert.ErrorIs(t, engine.Revoke(uuid.New(), rootActor), apperr.ErrNotFound)
}
