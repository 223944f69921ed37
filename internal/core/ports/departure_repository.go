package ports

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/departure"
	"shipping/internal/core/domain/model/kernel"
)

// DepartureRepository defines the persistence contract for departure aggregates.
type DepartureRepository interface {
	// Add persists a new departure aggregate to storage.
	Add(ctx context.Context, aggregate *departure.Departure) error

	// Update persists changes to an existing departure aggregate.
	Update(ctx context.Context, aggregate *departure.Departure) error

	// Get retrieves a departure by its unique identifier.
	// Returns errs.ErrObjectNotFound when no such departure exists.
	Get(ctx context.Context, id kernel.UUID) (*departure.Departure, error)

	// GetForUpdate retrieves a departure and takes a row-level write lock on it
	// for the remainder of the transaction. Admission checks read usage under
	// this lock so that concurrent assignments to the same departure serialize.
	// Returns errs.ErrObjectNotFound when no such departure exists.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*departure.Departure, error)

	// DeactivateAllBefore deactivates every active departure whose date is
	// strictly before the cutoff. Returns the number of departures deactivated.
	DeactivateAllBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
