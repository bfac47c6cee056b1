package stock

import (
	"testing"

	"go-pharmacy-stock/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestAdd(t *testing.T) {
	b := &model.Batch{QuantityBig: 10, QuantitySmall: 3}

	assert.Equal(t, 15, Add(b, model.UnitBig, 5))
	assert.Equal(t, 1, Add(b, model.UnitSmall, -2))
	// Add must not mutate the batch.
	assert.Equal(t, 10, b.QuantityBig)
	assert.Equal(t, 3, b.QuantitySmall)
}

func TestCanSubtract(t *testing.T) {
	b := &model.Batch{QuantityBig: 10, QuantitySmall: 0}

	assert.True(t, CanSubtract(b, model.UnitBig, 10))
	assert.False(t, CanSubtract(b, model.UnitBig, 11))
	assert.True(t, CanSubtract(b, model.UnitSmall, 0))
	assert.False(t, CanSubtract(b, model.UnitSmall, 1))
}

func TestBatchTotal(t *testing.T) {
	b := &model.Batch{QuantityBig: 4, QuantitySmall: 7, ConversionRate: 12}
	assert.Equal(t, 55, BatchTotal(b))
}

func TestProductTotal_MixedConversionRates(t *testing.T) {
	p := &model.Product{Batches: []model.Batch{
		{QuantityBig: 2, QuantitySmall: 5, ConversionRate: 10}, // 25
		{QuantityBig: 1, QuantitySmall: 0, ConversionRate: 24}, // 24
		{QuantityBig: 0, QuantitySmall: 9, ConversionRate: 6},  // 9
	}}
	assert.Equal(t, 58, ProductTotal(p))
}

func TestProductTotal_NoBatches(t *testing.T) {
	assert.Equal(t, 0, ProductTotal(&model.Product{}))
}
