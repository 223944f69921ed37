package departurerepo

import (
	"context"
	"errors"
	"time"

	"shipping/internal/adapters/out/postgres/pgerr"
	"shipping/internal/core/domain/model/departure"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDepartureRepository implements DepartureRepository using GORM.
type GormDepartureRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDepartureRepository creates a new GORM departure repository.
func NewGormDepartureRepository(db *gorm.DB, tracker aggregateTracker) *GormDepartureRepository {
	return &GormDepartureRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new departure to the database.
func (r *GormDepartureRepository) Add(ctx context.Context, aggregate *departure.Departure) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing departure to the database. All columns are written,
// so deactivation (active=false) persists.
func (r *GormDepartureRepository) Update(ctx context.Context, aggregate *departure.Departure) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&DepartureDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return pgerr.Wrap("update departure", result.Error)
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a departure by ID.
func (r *GormDepartureRepository) Get(ctx context.Context, id kernel.UUID) (*departure.Departure, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DepartureDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("departure", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetForUpdate retrieves a departure and locks its row (SELECT ... FOR UPDATE)
// until the transaction ends. The lock serializes the check-then-commit window
// of concurrent assignments; a lock wait past the configured lock_timeout
// surfaces as errs.ErrTransientContention.
func (r *GormDepartureRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*departure.Departure, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DepartureDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("departure", id.String())
		}
		return nil, pgerr.Wrap("lock departure", err)
	}

	return toDomain(dto)
}

// DeactivateAllBefore deactivates every active departure dated strictly
// before the cutoff and returns how many rows changed.
func (r *GormDepartureRepository) DeactivateAllBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&DepartureDTO{}).
		Where("active AND date < ?", cutoff).
		Update("active", false)
	if result.Error != nil {
		return 0, pgerr.Wrap("deactivate past departures", result.Error)
	}

	return result.RowsAffected, nil
}
