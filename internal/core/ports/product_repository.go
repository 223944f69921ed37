package ports

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/product"
	"shipping/internal/core/domain/services"
)

// TypeUsage is the per-product-type usage breakdown of a departure.
type TypeUsage struct {
	ProductType string
	Count       int64
	Weight      float64
	Volume      float64
}

// ProductRepository defines the persistence contract for product aggregates.
// It doubles as the quota ledger: usage totals are always recomputed from the
// authoritative product rows, never read from denormalized counters.
type ProductRepository interface {
	// Add persists a new product aggregate to storage.
	Add(ctx context.Context, aggregate *product.Product) error

	// Update persists changes to an existing product aggregate.
	Update(ctx context.Context, aggregate *product.Product) error

	// Get retrieves a product by its unique identifier.
	// Returns errs.ErrObjectNotFound when no such product exists.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// Delete removes a product row. The freed capacity becomes visible to the
	// next usage recomputation automatically.
	Delete(ctx context.Context, id kernel.UUID) error

	// UsageForDeparture sums the weight and volume of every product assigned
	// to the departure, treating missing measurements as zero. When
	// excludeProductID is set that product's own contribution is left out,
	// which lets an edit re-admit the product against the remaining quota.
	UsageForDeparture(ctx context.Context, departureID kernel.UUID, excludeProductID *kernel.UUID) (services.Load, error)

	// UsageByProductType returns the per-type count/weight/volume breakdown of
	// the products assigned to the departure.
	UsageByProductType(ctx context.Context, departureID kernel.UUID) ([]TypeUsage, error)
}
