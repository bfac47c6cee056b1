package audit

import (
	"fmt"

	"go-pharmacy-stock/internal/apperr"
	"go-pharmacy-stock/internal/inventory"
	"go-pharmacy-stock/internal/model"

	"github.com/google/uuid"
)

// Engine reverses previously applied operations. Each entry transitions
// pending -> revoked exactly once; rollback is all-or-nothing per entry:
// when a precondition fails nothing is mutated and the entry stays
// pending.
type Engine struct {
	agg *inventory.Aggregate
	log *Log
}

func NewEngine(agg *inventory.Aggregate, log *Log) *Engine {
	return &Engine{agg: agg, log: log}
}

// Revoke undoes the entry's recorded mutation on behalf of the actor.
// A second attempt on an already-revoked entry is rejected before the
// authorization gate and before any precondition check runs; the revoked
// flag is only flipped after the mutation succeeded.
func (e *Engine) Revoke(entryID uuid.UUID, actor model.Actor) error {
	entry, err := e.log.Find(entryID)
	if err != nil {
		return err
	}
	if entry.Revoked {
		return fmt.Errorf("log entry %s: %w", entryID, apperr.ErrAlreadyRevoked)
	}
	if !CanRevoke(entry, actor) {
		return fmt.Errorf("actor %s on entry %s: %w", actor.ID, entryID, apperr.ErrUnauthorized)
	}
	if err := e.rollback(entry); err != nil {
		return err
	}
	return e.log.MarkRevoked(entry.ID)
}

func (e *Engine) rollback(entry *model.MutationLogEntry) error {
	switch entry.Kind {
	case model.ActionInbound:
		return e.rollbackInbound(entry)
	case model.ActionOutbound:
		return e.rollbackOutbound(entry)
	case model.ActionAdjust:
		return e.rollbackAdjust(entry)
	case model.ActionDelete:
		return e.rollbackDelete(entry)
	case model.ActionImport:
		return e.rollbackImport(entry)
	}
	return fmt.Errorf("%q: %w", entry.Kind, apperr.ErrUnknownActionKind)
}

// rollbackInbound subtracts the recorded delta, provided the unit still
// holds at least that much. A shortfall means the stock was consumed
// elsewhere since the inbound, so the rollback is refused.
func (e *Engine) rollbackInbound(entry *model.MutationLogEntry) error {
	snap := entry.Snapshot.Quantity
	if snap == nil {
		return fmt.Errorf("%s entry without quantity snapshot: %w", entry.Kind, apperr.ErrUnknownActionKind)
	}
	current, err := e.agg.Quantity(snap.ProductID, snap.BatchID, snap.Unit)
	if err != nil {
		return err
	}
	if current < snap.Qty {
		return fmt.Errorf("batch %s holds %d, inbound was %d: %w",
			snap.BatchID, current, snap.Qty, apperr.ErrInsufficientStock)
	}
	return e.agg.ApplyDelta(snap.ProductID, snap.BatchID, snap.Unit, -snap.Qty)
}

// rollbackOutbound adds the recorded delta back. Addition cannot go
// negative, so the only failure mode is a missing product or batch.
func (e *Engine) rollbackOutbound(entry *model.MutationLogEntry) error {
	snap := entry.Snapshot.Quantity
	if snap == nil {
		return fmt.Errorf("%s entry without quantity snapshot: %w", entry.Kind, apperr.ErrUnknownActionKind)
	}
	return e.agg.ApplyDelta(snap.ProductID, snap.BatchID, snap.Unit, snap.Qty)
}

// rollbackAdjust overwrites the current record with the captured
// original, failing only if the record was deleted in the meantime.
func (e *Engine) rollbackAdjust(entry *model.MutationLogEntry) error {
	snap := entry.Snapshot.Original
	if snap == nil {
		return fmt.Errorf("%s entry without original record: %w", entry.Kind, apperr.ErrUnknownActionKind)
	}
	if snap.Batch != nil {
		return e.agg.ReplaceBatch(snap.Batch.ProductID, *snap.Batch)
	}
	if snap.Product != nil {
		return e.agg.ReplaceProduct(*snap.Product)
	}
	return fmt.Errorf("%s entry with empty original record: %w", entry.Kind, apperr.ErrUnknownActionKind)
}

// rollbackDelete reinserts the captured full product. An id collision is
// surfaced, not silently overwritten.
func (e *Engine) rollbackDelete(entry *model.MutationLogEntry) error {
	snap := entry.Snapshot.Deleted
	if snap == nil {
		return fmt.Errorf("%s entry without deleted product: %w", entry.Kind, apperr.ErrUnknownActionKind)
	}
	return e.agg.ReinsertProduct(snap.Product)
}

// rollbackImport removes whatever the import created. Ids no longer
// present are skipped, not fatal; partial removal still counts as
// success. A product left without batches is removed too.
func (e *Engine) rollbackImport(entry *model.MutationLogEntry) error {
	snap := entry.Snapshot.Imported
	if snap == nil {
		return fmt.Errorf("%s entry without imported ids: %w", entry.Kind, apperr.ErrUnknownActionKind)
	}
	if len(snap.BatchIDs) > 0 {
		e.agg.RemoveBatchesByIDs(snap.BatchIDs)
		return nil
	}
	e.agg.RemoveProductsByIDs(snap.ProductIDs)
	return nil
}
