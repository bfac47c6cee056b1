package service

import (
	"errors"
	"fmt"

	"go-pharmacy-stock/internal/apperr"
	"go-pharmacy-stock/internal/audit"
	"go-pharmacy-stock/internal/inventory"
	"go-pharmacy-stock/internal/model"
	"go-pharmacy-stock/internal/repository"
	"go-pharmacy-stock/internal/stock"
	"go-pharmacy-stock/internal/ws"
	"go-pharmacy-stock/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryService executes forward mutations: each one runs against the
// in-memory aggregate inside a locked db transaction, captures its
// snapshot before committing, and appends a mutation log entry in the
// same transaction.
type InventoryService interface {
	GetAllProducts() ([]model.Product, error)
	GetProductsByStore(storeID uuid.UUID) ([]model.Product, error)
	GetProduct(id uuid.UUID) (*model.Product, error)
	Inbound(req *StockMovementRequest, actor model.Actor) (*model.MutationLogEntry, error)
	Outbound(req *StockMovementRequest, actor model.Actor) (*model.MutationLogEntry, error)
	AdjustBatch(storeID, productID uuid.UUID, batch *model.Batch, actor model.Actor) (*model.MutationLogEntry, error)
	AdjustProduct(storeID uuid.UUID, product *model.Product, actor model.Actor) (*model.MutationLogEntry, error)
	DeleteProduct(storeID, productID uuid.UUID, actor model.Actor) (*model.MutationLogEntry, error)
	ImportProducts(storeID uuid.UUID, products []model.Product, actor model.Actor) (*model.MutationLogEntry, error)
	ImportBatch(storeID, productID uuid.UUID, batch *model.Batch, actor model.Actor) (*model.MutationLogEntry, error)
}

// StockMovementRequest carries an inbound or outbound movement.
type StockMovementRequest struct {
	StoreID   uuid.UUID  `json:"store_id" validate:"uuid_required"`
	ProductID uuid.UUID  `json:"product_id" validate:"uuid_required"`
	BatchID   uuid.UUID  `json:"batch_id" validate:"uuid_required"`
	Unit      model.Unit `json:"unit" validate:"required,oneof=BIG SMALL"`
	Qty       int        `json:"qty" validate:"required,gt=0"`
	Note      string     `json:"note"`
}

type inventoryService struct {
	productRepo repository.ProductRepository
	storeRepo   repository.StoreRepository
	logRepo     repository.LogEntryRepository
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewInventoryService(pRepo repository.ProductRepository, sRepo repository.StoreRepository, lRepo repository.LogEntryRepository, db *gorm.DB, hub *ws.Hub) InventoryService {
	return &inventoryService{
		productRepo: pRepo,
		storeRepo:   sRepo,
		logRepo:     lRepo,
		db:          db,
		wsHub:       hub,
	}
}

func (s *inventoryService) GetAllProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *inventoryService) GetProductsByStore(storeID uuid.UUID) ([]model.Product, error) {
	return s.productRepo.FindAllByStore(storeID)
}

func (s *inventoryService) GetProduct(id uuid.UUID) (*model.Product, error) {
	p, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", id, apperr.ErrNotFound)
	}
	return p, nil
}

func (s *inventoryService) Inbound(req *StockMovementRequest, actor model.Actor) (*model.MutationLogEntry, error) {
	return s.movement(req, actor, model.ActionInbound)
}

func (s *inventoryService) Outbound(req *StockMovementRequest, actor model.Actor) (*model.MutationLogEntry, error) {
	return s.movement(req, actor, model.ActionOutbound)
}

func (s *inventoryService) movement(req *StockMovementRequest, actor model.Actor, kind model.ActionKind) (*model.MutationLogEntry, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if err := s.requireLeafStore(req.StoreID); err != nil {
		return nil, err
	}

	var entry *model.MutationLogEntry
	err := s.db.Transaction(func(tx *gorm.DB) error {
		product, err := s.productRepo.LockByID(tx, req.ProductID)
		if err != nil {
			return fmt.Errorf("product %s: %w", req.ProductID, apperr.ErrNotFound)
		}

		agg := inventory.New([]model.Product{*product})

		// Snapshot before the mutation so the "before" image is exact.
		snap := audit.CaptureQuantity(req.ProductID, req.BatchID, req.Unit, req.Qty)

		delta := req.Qty
		if kind == model.ActionOutbound {
			b := product.Batch(req.BatchID)
			if b == nil {
				return fmt.Errorf("batch %s: %w", req.BatchID, apperr.ErrNotFound)
			}
			if !stock.CanSubtract(b, req.Unit, req.Qty) {
				return fmt.Errorf("batch %s holds %d %s: %w",
					req.BatchID, b.Quantity(req.Unit), req.Unit, apperr.ErrInsufficientStock)
			}
			delta = -req.Qty
		}
		if err := agg.ApplyDelta(req.ProductID, req.BatchID, req.Unit, delta); err != nil {
			return err
		}

		mutated, err := agg.Product(req.ProductID)
		if err != nil {
			return err
		}
		batch := mutated.Batch(req.BatchID)
		if err := s.productRepo.SaveBatch(tx, batch); err != nil {
			return err
		}

		verb := "received"
		if kind == model.ActionOutbound {
			verb = "shipped"
		}
		entry = s.newEntry(kind, req.StoreID, &req.ProductID, &req.BatchID, actor,
			fmt.Sprintf("%s %s %d %s of '%s' (lot %s)", actor.Username, verb, req.Qty, req.Unit, product.Name, batch.LotNumber),
			snap)
		return s.logRepo.Create(tx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.broadcast("stock_movement", entry, actor)
	return entry, nil
}

func (s *inventoryService) AdjustBatch(storeID, productID uuid.UUID, batch *model.Batch, actor model.Actor) (*model.MutationLogEntry, error) {
	batch.ProductID = productID
	if err := validateStruct(batch); err != nil {
		return nil, err
	}
	if err := s.requireLeafStore(storeID); err != nil {
		return nil, err
	}

	var entry *model.MutationLogEntry
	err := s.db.Transaction(func(tx *gorm.DB) error {
		product, err := s.productRepo.LockByID(tx, productID)
		if err != nil {
			return fmt.Errorf("product %s: %w", productID, apperr.ErrNotFound)
		}
		existing := product.Batch(batch.ID)
		if existing == nil {
			return fmt.Errorf("batch %s: %w", batch.ID, apperr.ErrNotFound)
		}

		snap := audit.CaptureBatchOriginal(*existing)

		batch.CreatedAt = existing.CreatedAt
		agg := inventory.New([]model.Product{*product})
		if err := agg.ReplaceBatch(productID, *batch); err != nil {
			return err
		}
		if err := s.productRepo.SaveBatch(tx, batch); err != nil {
			return err
		}

		entry = s.newEntry(model.ActionAdjust, storeID, &productID, &batch.ID, actor,
			fmt.Sprintf("%s adjusted batch (lot %s) of '%s'", actor.Username, batch.LotNumber, product.Name),
			snap)
		return s.logRepo.Create(tx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.broadcast("stock_adjust", entry, actor)
	return entry, nil
}

func (s *inventoryService) AdjustProduct(storeID uuid.UUID, product *model.Product, actor model.Actor) (*model.MutationLogEntry, error) {
	if err := s.requireLeafStore(storeID); err != nil {
		return nil, err
	}

	var entry *model.MutationLogEntry
	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.productRepo.LockByID(tx, product.ID)
		if err != nil {
			return fmt.Errorf("product %s: %w", product.ID, apperr.ErrNotFound)
		}

		snap := audit.CaptureProductOriginal(*existing)

		// Only product-level fields are adjustable here; batches keep
		// their own ADJUST path.
		existing.Name = product.Name
		existing.SKU = product.SKU
		existing.Category = product.Category
		existing.Notes = product.Notes
		existing.Keywords = product.Keywords
		existing.UpdatedBy = actor.ID.String()

		agg := inventory.New([]model.Product{*existing})
		if err := agg.ReplaceProduct(*existing); err != nil {
			return err
		}
		if err := tx.Save(existing).Error; err != nil {
			return err
		}
		*product = *existing

		entry = s.newEntry(model.ActionAdjust, storeID, &product.ID, nil, actor,
			fmt.Sprintf("%s adjusted product '%s'", actor.Username, existing.Name),
			snap)
		return s.logRepo.Create(tx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.broadcast("stock_adjust", entry, actor)
	return entry, nil
}

func (s *inventoryService) DeleteProduct(storeID, productID uuid.UUID, actor model.Actor) (*model.MutationLogEntry, error) {
	if err := s.requireLeafStore(storeID); err != nil {
		return nil, err
	}

	var entry *model.MutationLogEntry
	err := s.db.Transaction(func(tx *gorm.DB) error {
		product, err := s.productRepo.LockByID(tx, productID)
		if err != nil {
			return fmt.Errorf("product %s: %w", productID, apperr.ErrNotFound)
		}

		// Deletion removes the whole record, so the snapshot is the full
		// product with all batches.
		snap := audit.CaptureDeleted(*product)

		agg := inventory.New([]model.Product{*product})
		if _, err := agg.RemoveProduct(productID); err != nil {
			return err
		}
		if err := s.productRepo.Delete(tx, productID); err != nil {
			return err
		}

		entry = s.newEntry(model.ActionDelete, storeID, &productID, nil, actor,
			fmt.Sprintf("%s deleted product '%s' (%d batches)", actor.Username, product.Name, len(product.Batches)),
			snap)
		return s.logRepo.Create(tx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.broadcast("product_deleted", entry, actor)
	return entry, nil
}

func (s *inventoryService) ImportProducts(storeID uuid.UUID, products []model.Product, actor model.Actor) (*model.MutationLogEntry, error) {
	if len(products) == 0 {
		return nil, errors.New("nothing to import")
	}
	if err := s.requireLeafStore(storeID); err != nil {
		return nil, err
	}

	var entry *model.MutationLogEntry
	err := s.db.Transaction(func(tx *gorm.DB) error {
		ids := make([]uuid.UUID, 0, len(products))
		for i := range products {
			products[i].StoreID = storeID
			products[i].CreatedBy = actor.ID.String()
			if err := validateStruct(&products[i]); err != nil {
				return err
			}
			if err := s.productRepo.Create(tx, &products[i]); err != nil {
				return err
			}
			ids = append(ids, products[i].ID)
		}

		snap := audit.CaptureImportedProducts(ids)
		entry = s.newEntry(model.ActionImport, storeID, nil, nil, actor,
			fmt.Sprintf("%s imported %d products", actor.Username, len(ids)),
			snap)
		return s.logRepo.Create(tx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.broadcast("products_imported", entry, actor)
	return entry, nil
}

func (s *inventoryService) ImportBatch(storeID, productID uuid.UUID, batch *model.Batch, actor model.Actor) (*model.MutationLogEntry, error) {
	if err := s.requireLeafStore(storeID); err != nil {
		return nil, err
	}

	var entry *model.MutationLogEntry
	err := s.db.Transaction(func(tx *gorm.DB) error {
		product, err := s.productRepo.LockByID(tx, productID)
		if err != nil {
			return fmt.Errorf("product %s: %w", productID, apperr.ErrNotFound)
		}

		batch.ProductID = productID
		batch.CreatedBy = actor.ID.String()
		if err := validateStruct(batch); err != nil {
			return err
		}
		if err := s.productRepo.AddBatch(tx, batch); err != nil {
			return err
		}

		snap := audit.CaptureImportedBatch(productID, batch.ID)
		entry = s.newEntry(model.ActionImport, storeID, &productID, &batch.ID, actor,
			fmt.Sprintf("%s imported batch (lot %s) into '%s'", actor.Username, batch.LotNumber, product.Name),
			snap)
		return s.logRepo.Create(tx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.broadcast("batch_imported", entry, actor)
	return entry, nil
}

// requireLeafStore rejects mutations whose target store is a parent.
func (s *inventoryService) requireLeafStore(storeID uuid.UUID) error {
	store, err := s.storeRepo.FindByID(storeID)
	if err != nil {
		return fmt.Errorf("store %s: %w", storeID, apperr.ErrNotFound)
	}
	if !store.IsLeaf() {
		return fmt.Errorf("store %s: %w", storeID, apperr.ErrReadOnlyStore)
	}
	return nil
}

func (s *inventoryService) newEntry(kind model.ActionKind, storeID uuid.UUID, productID, batchID *uuid.UUID, actor model.Actor, description string, snap model.Snapshot) *model.MutationLogEntry {
	entry := &model.MutationLogEntry{
		Kind:         kind,
		StoreID:      storeID,
		ProductID:    productID,
		BatchID:      batchID,
		Description:  description,
		OperatorID:   actor.ID,
		OperatorName: actor.Username,
		OperatorRole: actor.Role,
		Snapshot:     snap,
	}
	entry.CreatedBy = actor.ID.String()
	entry.UpdatedBy = actor.ID.String()
	return entry
}

func (s *inventoryService) broadcast(event string, entry *model.MutationLogEntry, actor model.Actor) {
	s.wsHub.Emit(ws.EntryEvent{
		Type:    event,
		Entry:   entry,
		User:    ws.EventUser{ID: actor.ID, Name: actor.Username, Role: string(actor.Role)},
		Message: entry.Description,
	})
}

func validateStruct(data interface{}) error {
	if errs := validator.ValidateStruct(data); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}
	return nil
}
