package service

import (
	"errors"
	"fmt"

	"go-pharmacy-stock/internal/apperr"
	"go-pharmacy-stock/internal/audit"
	"go-pharmacy-stock/internal/inventory"
	"go-pharmacy-stock/internal/model"
	"go-pharmacy-stock/internal/repository"
	"go-pharmacy-stock/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditService exposes the mutation log and drives the revoke flow:
// authorization gate, rollback engine dispatch, persistence flush and the
// one-way revoked flip, all inside a single transaction.
type AuditService interface {
	ListEntries(filter repository.LogEntryFilter) ([]model.MutationLogEntry, error)
	GetEntry(id uuid.UUID) (*model.MutationLogEntry, error)
	Revoke(entryID uuid.UUID, actor model.Actor) (*model.MutationLogEntry, error)
}

type auditService struct {
	logRepo     repository.LogEntryRepository
	productRepo repository.ProductRepository
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewAuditService(lRepo repository.LogEntryRepository, pRepo repository.ProductRepository, db *gorm.DB, hub *ws.Hub) AuditService {
	return &auditService{
		logRepo:     lRepo,
		productRepo: pRepo,
		db:          db,
		wsHub:       hub,
	}
}

func (s *auditService) ListEntries(filter repository.LogEntryFilter) ([]model.MutationLogEntry, error) {
	return s.logRepo.List(filter)
}

func (s *auditService) GetEntry(id uuid.UUID) (*model.MutationLogEntry, error) {
	entry, err := s.logRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("log entry %s: %w", id, apperr.ErrNotFound)
	}
	return entry, nil
}

// Revoke undoes the entry's mutation. All-or-nothing: a failed
// precondition rolls the transaction back and the entry stays pending.
func (s *auditService) Revoke(entryID uuid.UUID, actor model.Actor) (*model.MutationLogEntry, error) {
	var entry *model.MutationLogEntry
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		entry, err = s.logRepo.LockByID(tx, entryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("log entry %s: %w", entryID, apperr.ErrNotFound)
			}
			return err
		}

		agg, err := s.loadAggregate(tx, entry)
		if err != nil {
			return err
		}

		engine := audit.NewEngine(agg, audit.NewLog([]*model.MutationLogEntry{entry}))
		if err := engine.Revoke(entry.ID, actor); err != nil {
			return err
		}

		if err := s.flush(tx, entry, agg); err != nil {
			return err
		}
		return s.logRepo.MarkRevoked(tx, entry.ID)
	})
	if err != nil {
		return nil, err
	}

	s.wsHub.Emit(ws.EntryEvent{
		Type:    "log_revoked",
		Entry:   entry,
		User:    ws.EventUser{ID: actor.ID, Name: actor.Username, Role: string(actor.Role)},
		Message: fmt.Sprintf("%s revoked: %s", actor.Username, entry.Description),
	})

	return entry, nil
}

// loadAggregate locks and loads exactly the rows the entry's rollback can
// touch. Rows deleted since the original action are simply absent; the
// engine turns that into its per-kind failure mode.
func (s *auditService) loadAggregate(tx *gorm.DB, entry *model.MutationLogEntry) (*inventory.Aggregate, error) {
	var ids []uuid.UUID
	switch entry.Kind {
	case model.ActionInbound, model.ActionOutbound:
		if q := entry.Snapshot.Quantity; q != nil {
			ids = append(ids, q.ProductID)
		}
	case model.ActionAdjust:
		if o := entry.Snapshot.Original; o != nil {
			if o.Batch != nil {
				ids = append(ids, o.Batch.ProductID)
			}
			if o.Product != nil {
				ids = append(ids, o.Product.ID)
			}
		}
	case model.ActionDelete:
		// The soft-deleted row is invisible to LockByID, so normally
		// nothing loads here. A live row under the same id does load,
		// and the reinsert then surfaces the collision instead of
		// overwriting it.
		if d := entry.Snapshot.Deleted; d != nil {
			ids = append(ids, d.Product.ID)
		}
	case model.ActionImport:
		if imp := entry.Snapshot.Imported; imp != nil {
			ids = append(ids, imp.ProductIDs...)
			if imp.ProductID != nil {
				ids = append(ids, *imp.ProductID)
			}
		}
	}

	var products []model.Product
	for _, id := range ids {
		p, err := s.productRepo.LockByID(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		products = append(products, *p)
	}
	return inventory.New(products), nil
}

// flush writes the aggregate's post-rollback state back to storage.
func (s *auditService) flush(tx *gorm.DB, entry *model.MutationLogEntry, agg *inventory.Aggregate) error {
	switch entry.Kind {
	case model.ActionInbound, model.ActionOutbound:
		q := entry.Snapshot.Quantity
		product, err := agg.Product(q.ProductID)
		if err != nil {
			return err
		}
		return s.productRepo.SaveBatch(tx, product.Batch(q.BatchID))

	case model.ActionAdjust:
		o := entry.Snapshot.Original
		if o.Batch != nil {
			restored := o.Batch.Clone()
			return s.productRepo.SaveBatch(tx, &restored)
		}
		product, err := agg.Product(o.Product.ID)
		if err != nil {
			return err
		}
		return s.productRepo.Save(tx, &product)

	case model.ActionDelete:
		restored := entry.Snapshot.Deleted.Product
		return s.productRepo.Reinsert(tx, &restored)

	case model.ActionImport:
		imp := entry.Snapshot.Imported
		if len(imp.BatchIDs) > 0 {
			if err := s.productRepo.DeleteBatchesByIDs(tx, imp.BatchIDs); err != nil {
				return err
			}
			// A single-batch import's parent product goes with its last batch.
			if imp.ProductID != nil {
				n, err := s.productRepo.CountBatches(tx, *imp.ProductID)
				if err != nil {
					return err
				}
				if n == 0 {
					return s.productRepo.Delete(tx, *imp.ProductID)
				}
			}
			return nil
		}
		return s.productRepo.DeleteByIDs(tx, imp.ProductIDs)
	}
	return fmt.Errorf("%q: %w", entry.Kind, apperr.ErrUnknownActionKind)
}
