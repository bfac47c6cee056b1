// Package stock holds the shared quantity math used by forward mutations
// and rollback. Quantities are plain integers; the conversion rate is only
// used for aggregate totals, never to convert between units.
package stock

import "go-pharmacy-stock/internal/model"

// Add returns the quantity after adding delta to the named unit of the
// batch. The batch is not modified.
func Add(b *model.Batch, unit model.Unit, delta int) int {
	return b.Quantity(unit) + delta
}

// CanSubtract reports whether the named unit holds at least qty.
func CanSubtract(b *model.Batch, unit model.Unit, qty int) bool {
	return b.Quantity(unit) >= qty
}

// BatchTotal returns a batch's stock expressed in small units, using the
// batch's own conversion rate.
func BatchTotal(b *model.Batch) int {
	return b.QuantityBig*b.ConversionRate + b.QuantitySmall
}

// ProductTotal returns a product's stock summed over its batches. Batches
// are not required to share a conversion rate.
func ProductTotal(p *model.Product) int {
	total := 0
	for i := range p.Batches {
		total += BatchTotal(&p.Batches[i])
	}
	return total
}
