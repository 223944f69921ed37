package queries

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrListAvailableDeparturesQueryIsNotConstructed = errors.New(
	"ListAvailableDeparturesQuery must be created via NewListAvailableDeparturesQuery constructor",
)

// ListAvailableDeparturesQuery retrieves the active future departures that
// accept the given product type, each annotated with its occupancy so the
// assignment screens can grey out full slots. A departure whose accepted set
// excludes the type is never listed, full or not.
type ListAvailableDeparturesQuery struct { //nolint:recvcheck //using for validation
	productType string
	after       time.Time

	guard guard.ConstructorGuard
}

// NewListAvailableDeparturesQuery creates an availability query for the given
// product type. Departures dated before `after` are excluded.
func NewListAvailableDeparturesQuery(productType string, after time.Time) (ListAvailableDeparturesQuery, error) {
	query := ListAvailableDeparturesQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setProductType(productType),
		query.setAfter(after),
	); err != nil {
		return ListAvailableDeparturesQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrListAvailableDeparturesQueryIsNotConstructed if validation fails.
func (q ListAvailableDeparturesQuery) Validate() error {
	return q.guard.Validate(ErrListAvailableDeparturesQueryIsNotConstructed)
}

// ProductType returns the type the caller wants to ship.
func (q ListAvailableDeparturesQuery) ProductType() string {
	return q.productType
}

// After returns the date cutoff; earlier departures are excluded.
func (q ListAvailableDeparturesQuery) After() time.Time {
	return q.after
}

func (q *ListAvailableDeparturesQuery) setProductType(productType string) error {
	if productType == "" {
		return errs.NewValueIsRequiredError("productType")
	}

	q.productType = productType
	return nil
}

func (q *ListAvailableDeparturesQuery) setAfter(after time.Time) error {
	if after.IsZero() {
		return errs.NewValueIsRequiredError("after")
	}

	q.after = after
	return nil
}

// AvailableDeparture is one availability listing entry. A zero-capacity
// dimension counts as full: it can admit nothing.
type AvailableDeparture struct {
	DepartureID          kernel.UUID
	Date                 time.Time
	CarrierID            kernel.UUID
	AcceptedProductTypes string
	CapacityWeight       float64
	CapacityVolume       float64
	UsedWeight           float64
	UsedVolume           float64
	PctWeight            float64
	PctVolume            float64
	IsFullByWeight       bool
	IsFullByVolume       bool
	IsFull               bool
}
