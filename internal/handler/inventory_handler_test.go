package handler

import (
	"testing"

	"go-pharmacy-stock/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestToProductResponse_TotalStock(t *testing.T) {
	p := model.Product{Batches: []model.Batch{
		{QuantityBig: 2, QuantitySmall: 5, ConversionRate: 10}, // 25
		{QuantityBig: 1, QuantitySmall: 0, ConversionRate: 24}, // 24
	}}

	resp := toProductResponse(p)
	assert.Equal(t, 49, resp.TotalStock)
}

func TestToProductResponses(t *testing.T) {
	products := []model.Product{
		{Batches: []model.Batch{{QuantityBig: 1, ConversionRate: 12}}},
		{},
	}

	resps := toProductResponses(products)
	assert.Len(t, resps, 2)
	assert.Equal(t, 12, resps[0].TotalStock)
	assert.Equal(t, 0, resps[1].TotalStock)
}
