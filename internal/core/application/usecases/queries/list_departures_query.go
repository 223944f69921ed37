package queries

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrListDeparturesQueryIsNotConstructed = errors.New(
	"ListDeparturesQuery must be created via NewListDeparturesQuery constructor",
)

// ListDeparturesQuery retrieves the departure schedule within a date range,
// inactive departures included. This is the calendar view.
type ListDeparturesQuery struct { //nolint:recvcheck //using for validation
	from time.Time
	to   time.Time

	guard guard.ConstructorGuard
}

// NewListDeparturesQuery creates a schedule query for [from, to].
func NewListDeparturesQuery(from, to time.Time) (ListDeparturesQuery, error) {
	query := ListDeparturesQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setRange(from, to); err != nil {
		return ListDeparturesQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrListDeparturesQueryIsNotConstructed if validation fails.
func (q ListDeparturesQuery) Validate() error {
	return q.guard.Validate(ErrListDeparturesQueryIsNotConstructed)
}

// From returns the inclusive start of the range.
func (q ListDeparturesQuery) From() time.Time {
	return q.from
}

// To returns the inclusive end of the range.
func (q ListDeparturesQuery) To() time.Time {
	return q.to
}

func (q *ListDeparturesQuery) setRange(from, to time.Time) error {
	if from.IsZero() {
		return errs.NewValueIsRequiredError("from")
	}
	if to.IsZero() {
		return errs.NewValueIsRequiredError("to")
	}
	if to.Before(from) {
		return errs.NewValueIsInvalidError("to")
	}

	q.from = from
	q.to = to
	return nil
}

// DepartureListEntry is one row of the schedule listing.
type DepartureListEntry struct {
	DepartureID          kernel.UUID
	Date                 time.Time
	ArrivalDate          *time.Time
	CarrierID            kernel.UUID
	DestinationID        *kernel.UUID
	AcceptedProductTypes string
	CapacityWeight       float64
	CapacityVolume       float64
	Active               bool
}
