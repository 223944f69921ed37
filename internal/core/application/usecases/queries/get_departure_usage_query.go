// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrGetDepartureUsageQueryIsNotConstructed = errors.New(
	"GetDepartureUsageQuery must be created via NewGetDepartureUsageQuery constructor",
)

// GetDepartureUsageQuery retrieves the current load of a departure: summed
// weight and volume of its assigned products against the declared quota.
//
// Example:
//
//	query, err := NewGetDepartureUsageQuery(departureID)
//	usage, err := handler.Handle(ctx, query)
//	fmt.Printf("weight %.1f%% volume %.1f%%\n", usage.PctWeight, usage.PctVolume)
type GetDepartureUsageQuery struct { //nolint:recvcheck //using for validation
	departureID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDepartureUsageQuery creates a query for the given departure's usage.
func NewGetDepartureUsageQuery(departureID kernel.UUID) (GetDepartureUsageQuery, error) {
	query := GetDepartureUsageQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setDepartureID(departureID); err != nil {
		return GetDepartureUsageQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetDepartureUsageQueryIsNotConstructed if validation fails.
func (q GetDepartureUsageQuery) Validate() error {
	return q.guard.Validate(ErrGetDepartureUsageQueryIsNotConstructed)
}

// DepartureID returns the departure being inspected.
func (q GetDepartureUsageQuery) DepartureID() kernel.UUID {
	return q.departureID
}

func (q *GetDepartureUsageQuery) setDepartureID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("departureID", err)
	}

	q.departureID = id
	return nil
}

// GetDepartureUsageQueryResponse is the usage read model. Percentages are
// rounded to one decimal; a zero-capacity dimension reports 0%.
type GetDepartureUsageQueryResponse struct {
	DepartureID    kernel.UUID
	UsedWeight     float64
	UsedVolume     float64
	CapacityWeight float64
	CapacityVolume float64
	PctWeight      float64
	PctVolume      float64
}
