package inventory

import (
	"testing"

	"go-pharmacy-stock/internal/apperr"
	"go-pharmacy-stock/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProduct(name string, batches ...model.Batch) model.Product {
	p := model.Product{Name: name, SKU: name, Batches: batches}
	p.ID = uuid.New()
	for i := range p.Batches {
		p.Batches[i].ID = uuid.New()
		p.Batches[i].ProductID = p.ID
		if p.Batches[i].ConversionRate == 0 {
			p.Batches[i].ConversionRate = 10
		}
	}
	return p
}

func TestApplyDelta(t *testing.T) {
	p := newProduct("amoxicillin", model.Batch{QuantityBig: 10, QuantitySmall: 2})
	agg := New([]model.Product{p})
	batchID := p.Batches[0].ID

	require.NoError(t, agg.ApplyDelta(p.ID, batchID, model.UnitBig, -3))
	qty, err := agg.Quantity(p.ID, batchID, model.UnitBig)
	require.NoError(t, err)
	assert.Equal(t, 7, qty)

	// Units are independent.
	qty, err = agg.Quantity(p.ID, batchID, model.UnitSmall)
	require.NoError(t, err)
	assert.Equal(t, 2, qty)
}

func TestApplyDelta_NegativeStock(t *testing.T) {
	p := newProduct("ibuprofen", model.Batch{QuantityBig: 2})
	agg := New([]model.Product{p})
	batchID := p.Batches[0].ID

	err := agg.ApplyDelta(p.ID, batchID, model.UnitBig, -3)
	assert.ErrorIs(t, err, apperr.ErrNegativeStock)

	// Nothing was applied.
	qty, _ := agg.Quantity(p.ID, batchID, model.UnitBig)
	assert.Equal(t, 2, qty)
}

func TestApplyDelta_NotFound(t *testing.T) {
	p := newProduct("aspirin", model.Batch{QuantityBig: 1})
	agg := New([]model.Product{p})

	assert.ErrorIs(t, agg.ApplyDelta(uuid.New(), p.Batches[0].ID, model.UnitBig, 1), apperr.ErrNotFound)
	assert.ErrorIs(t, agg.ApplyDelta(p.ID, uuid.New(), model.UnitBig, 1), apperr.ErrNotFound)
}

func TestNew_DeepCopiesInput(t *testing.T) {
	p := newProduct("paracetamol", model.Batch{QuantityBig: 5})
	agg := New([]model.Product{p})

	require.NoError(t, agg.ApplyDelta(p.ID, p.Batches[0].ID, model.UnitBig, 5))

	// The caller's copy is untouched.
	assert.Equal(t, 5, p.Batches[0].QuantityBig)
}

func TestReplaceBatch(t *testing.T) {
	p := newProduct("cetirizine", model.Batch{QuantityBig: 5, LotNumber: "L1"})
	agg := New([]model.Product{p})

	replacement := p.Batches[0].Clone()
	replacement.QuantityBig = 99
	replacement.LotNumber = "L2"
	require.NoError(t, agg.ReplaceBatch(p.ID, replacement))

	got, err := agg.Product(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 99, got.Batches[0].QuantityBig)
	assert.Equal(t, "L2", got.Batches[0].LotNumber)
}

func TestReplaceBatch_NotFound(t *testing.T) {
	p := newProduct("cetirizine", model.Batch{QuantityBig: 5})
	agg := New([]model.Product{p})

	missing := model.Batch{}
	missing.ID = uuid.New()
	assert.ErrorIs(t, agg.ReplaceBatch(p.ID, missing), apperr.ErrNotFound)
}

func TestRemoveAndReinsertProduct(t *testing.T) {
	p := newProduct("loratadine", model.Batch{QuantityBig: 3}, model.Batch{QuantitySmall: 8})
	agg := New([]model.Product{p})

	removed, err := agg.RemoveProduct(p.ID)
	require.NoError(t, err)
	assert.Len(t, removed.Batches, 2)
	assert.Equal(t, 0, agg.Len())

	require.NoError(t, agg.ReinsertProduct(removed))
	got, err := agg.Product(p.ID)
	require.NoError(t, err)
	assert.Len(t, got.Batches, 2)
}

func TestReinsertProduct_Collision(t *testing.T) {
	p := newProduct("loratadine", model.Batch{QuantityBig: 3})
	agg := New([]model.Product{p})

	assert.ErrorIs(t, agg.ReinsertProduct(p), apperr.ErrConflict)
}

func TestRemoveBatchesByIDs_DropsEmptyProduct(t *testing.T) {
	single := newProduct("single", model.Batch{QuantityBig: 1})
	double := newProduct("double", model.Batch{QuantityBig: 1}, model.Batch{QuantityBig: 2})
	agg := New([]model.Product{single, double})

	removed, dropped := agg.RemoveBatchesByIDs([]uuid.UUID{
		single.Batches[0].ID,
		double.Batches[0].ID,
		uuid.New(), // missing ids are skipped
	})

	assert.Len(t, removed, 2)
	assert.Equal(t, []uuid.UUID{single.ID}, dropped)
	assert.Equal(t, 1, agg.Len())

	got, err := agg.Product(double.ID)
	require.NoError(t, err)
	assert.Len(t, got.Batches, 1)
}

func TestRemoveProductsByIDs_SkipsMissing(t *testing.T) {
	a := newProduct("a", model.Batch{})
	b := newProduct("b", model.Batch{})
	agg := New([]model.Product{a, b})

	removed := agg.RemoveProductsByIDs([]uuid.UUID{a.ID, uuid.New()})
	assert.Equal(t, []uuid.UUID{a.ID}, removed)
	assert.Equal(t, 1, agg.Len())
}
