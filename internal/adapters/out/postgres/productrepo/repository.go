package productrepo

import (
	"context"
	"errors"

	"shipping/internal/adapters/out/postgres/pgerr"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/product"
	"shipping/internal/core/domain/services"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM.
type GormProductRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormProductRepository creates a new GORM product repository.
func NewGormProductRepository(db *gorm.DB, tracker aggregateTracker) *GormProductRepository {
	return &GormProductRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new product to the database.
func (r *GormProductRepository) Add(ctx context.Context, aggregate *product.Product) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Wrap("add product", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing product to the database. All columns are written,
// so unassignment (departure_id NULL) and cleared measurements persist.
func (r *GormProductRepository) Update(ctx context.Context, aggregate *product.Product) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ProductDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return pgerr.Wrap("update product", result.Error)
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a product by ID.
func (r *GormProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Delete removes a product row by ID.
func (r *GormProductRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&ProductDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return pgerr.Wrap("delete product", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("product", id.String())
	}

	return nil
}

// UsageForDeparture sums weight and volume over the products assigned to the
// departure, excluding excludeProductID when set. NULL measurements count as
// zero. Call it after GetForUpdate on the departure row for a stable read.
func (r *GormProductRepository) UsageForDeparture(
	ctx context.Context, departureID kernel.UUID, excludeProductID *kernel.UUID,
) (services.Load, error) {
	query := r.db.WithContext(ctx).
		Model(&ProductDTO{}).
		Select("COALESCE(SUM(weight), 0), COALESCE(SUM(volume), 0)").
		Where("departure_id = ?", departureID.Bytes())
	if excludeProductID != nil {
		query = query.Where("id <> ?", excludeProductID.Bytes())
	}

	var usage services.Load
	row := query.Row()
	if err := row.Scan(&usage.Weight, &usage.Volume); err != nil {
		return services.Load{}, pgerr.Wrap("read departure usage", err)
	}

	return usage, nil
}

// UsageByProductType returns the per-type count/weight/volume breakdown of the
// products assigned to the departure, ordered by type label.
func (r *GormProductRepository) UsageByProductType(
	ctx context.Context, departureID kernel.UUID,
) ([]ports.TypeUsage, error) {
	rows, err := r.db.WithContext(ctx).
		Model(&ProductDTO{}).
		Select("product_type, COUNT(*), COALESCE(SUM(weight), 0), COALESCE(SUM(volume), 0)").
		Where("departure_id = ?", departureID.Bytes()).
		Group("product_type").
		Order("product_type").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	usages := make([]ports.TypeUsage, 0)
	for rows.Next() {
		var usage ports.TypeUsage
		if err = rows.Scan(&usage.ProductType, &usage.Count, &usage.Weight, &usage.Volume); err != nil {
			return nil, err
		}
		usages = append(usages, usage)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return usages, nil
}
