// Package inventory holds the in-memory product/batch graph that forward
// mutations and rollbacks act on. The aggregate is the single source of
// truth for current quantities while an operation runs; the surrounding
// service loads it from and flushes it back to storage.
package inventory

import (
	"fmt"
	"sync"

	"go-pharmacy-stock/internal/apperr"
	"go-pharmacy-stock/internal/model"
	"go-pharmacy-stock/internal/stock"

	"github.com/google/uuid"
)

// Aggregate serializes every read-modify-write sequence under one mutex,
// so a precondition check and the mutation it guards never interleave
// with another operation on the same graph.
type Aggregate struct {
	mu       sync.Mutex
	products map[uuid.UUID]*model.Product
}

// New builds an aggregate over deep copies of the given products.
func New(products []model.Product) *Aggregate {
	a := &Aggregate{products: make(map[uuid.UUID]*model.Product, len(products))}
	for i := range products {
		p := products[i].Clone()
		a.products[p.ID] = &p
	}
	return a
}

// ApplyDelta adds delta (may be negative) to the named batch's quantity
// in the named unit. Fails with ErrNotFound if the product or batch is
// absent and ErrNegativeStock if the result would be negative; on failure
// nothing is modified.
func (a *Aggregate) ApplyDelta(productID, batchID uuid.UUID, unit model.Unit, delta int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	b, err := a.batch(productID, batchID)
	if err != nil {
		return err
	}
	next := stock.Add(b, unit, delta)
	if next < 0 {
		return fmt.Errorf("batch %s %s: %w", batchID, unit, apperr.ErrNegativeStock)
	}
	b.SetQuantity(unit, next)
	return nil
}

// Quantity returns the current count in the named unit of a batch.
func (a *Aggregate) Quantity(productID, batchID uuid.UUID, unit model.Unit) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	b, err := a.batch(productID, batchID)
	if err != nil {
		return 0, err
	}
	return b.Quantity(unit), nil
}

// ReplaceBatch overwrites the whole batch record under its product.
func (a *Aggregate) ReplaceBatch(productID uuid.UUID, batch model.Batch) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	p, ok := a.products[productID]
	if !ok {
		return fmt.Errorf("product %s: %w", productID, apperr.ErrNotFound)
	}
	for i := range p.Batches {
		if p.Batches[i].ID == batch.ID {
			p.Batches[i] = batch.Clone()
			return nil
		}
	}
	return fmt.Errorf("batch %s: %w", batch.ID, apperr.ErrNotFound)
}

// ReplaceProduct overwrites the whole product record, batches included.
func (a *Aggregate) ReplaceProduct(product model.Product) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.products[product.ID]; !ok {
		return fmt.Errorf("product %s: %w", product.ID, apperr.ErrNotFound)
	}
	p := product.Clone()
	a.products[p.ID] = &p
	return nil
}

// RemoveProduct removes the product and returns the removed record.
func (a *Aggregate) RemoveProduct(productID uuid.UUID) (model.Product, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	p, ok := a.products[productID]
	if !ok {
		return model.Product{}, fmt.Errorf("product %s: %w", productID, apperr.ErrNotFound)
	}
	delete(a.products, productID)
	return *p, nil
}

// ReinsertProduct puts a previously removed product back. An id collision
// is surfaced as ErrConflict rather than silently overwriting.
func (a *Aggregate) ReinsertProduct(product model.Product) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.products[product.ID]; ok {
		return fmt.Errorf("product %s: %w", product.ID, apperr.ErrConflict)
	}
	p := product.Clone()
	a.products[p.ID] = &p
	return nil
}

// AddBatch appends a batch to an existing product.
func (a *Aggregate) AddBatch(productID uuid.UUID, batch model.Batch) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	p, ok := a.products[productID]
	if !ok {
		return fmt.Errorf("product %s: %w", productID, apperr.ErrNotFound)
	}
	p.Batches = append(p.Batches, batch.Clone())
	return nil
}

// RemoveBatchesByIDs removes every batch whose id appears in ids,
// whichever product owns it. Missing ids are skipped. A product left with
// zero batches is removed as well. Returns the ids actually removed and
// the ids of products that were dropped.
func (a *Aggregate) RemoveBatchesByIDs(ids []uuid.UUID) (removed, droppedProducts []uuid.UUID) {
	a.mu.Lock()
	defer a.mu.Unlock()

	want := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	for pid, p := range a.products {
		kept := p.Batches[:0]
		removedHere := 0
		for i := range p.Batches {
			if want[p.Batches[i].ID] {
				removed = append(removed, p.Batches[i].ID)
				removedHere++
				continue
			}
			kept = append(kept, p.Batches[i])
		}
		if removedHere > 0 && len(kept) == 0 {
			delete(a.products, pid)
			droppedProducts = append(droppedProducts, pid)
			continue
		}
		p.Batches = kept
	}
	return removed, droppedProducts
}

// RemoveProductsByIDs removes every product whose id appears in ids.
// Missing ids are skipped, not fatal. Returns the ids actually removed.
func (a *Aggregate) RemoveProductsByIDs(ids []uuid.UUID) []uuid.UUID {
	a.mu.Lock()
	defer a.mu.Unlock()

	var removed []uuid.UUID
	for _, id := range ids {
		if _, ok := a.products[id]; ok {
			delete(a.products, id)
			removed = append(removed, id)
		}
	}
	return removed
}

// Product returns a deep copy of the product, or ErrNotFound.
func (a *Aggregate) Product(productID uuid.UUID) (model.Product, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	p, ok := a.products[productID]
	if !ok {
		return model.Product{}, fmt.Errorf("product %s: %w", productID, apperr.ErrNotFound)
	}
	return p.Clone(), nil
}

// Products returns deep copies of every product in the aggregate.
func (a *Aggregate) Products() []model.Product {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]model.Product, 0, len(a.products))
	for _, p := range a.products {
		out = append(out, p.Clone())
	}
	return out
}

// Len returns the number of products in the aggregate.
func (a *Aggregate) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.products)
}

func (a *Aggregate) batch(productID, batchID uuid.UUID) (*model.Batch, error) {
	p, ok := a.products[productID]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", productID, apperr.ErrNotFound)
	}
	b := p.Batch(batchID)
	if b == nil {
		return nil, fmt.Errorf("batch %s: %w", batchID, apperr.ErrNotFound)
	}
	return b, nil
}
