package queries

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrGetCapacityReportQueryIsNotConstructed = errors.New(
	"GetCapacityReportQuery must be created via NewGetCapacityReportQuery constructor",
)

// GetCapacityReportQuery retrieves the full capacity report of a departure:
// header data, the per-product-type breakdown and occupancy totals.
type GetCapacityReportQuery struct { //nolint:recvcheck //using for validation
	departureID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCapacityReportQuery creates a report query for the given departure.
func NewGetCapacityReportQuery(departureID kernel.UUID) (GetCapacityReportQuery, error) {
	query := GetCapacityReportQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setDepartureID(departureID); err != nil {
		return GetCapacityReportQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetCapacityReportQueryIsNotConstructed if validation fails.
func (q GetCapacityReportQuery) Validate() error {
	return q.guard.Validate(ErrGetCapacityReportQueryIsNotConstructed)
}

// DepartureID returns the departure being reported on.
func (q GetCapacityReportQuery) DepartureID() kernel.UUID {
	return q.departureID
}

func (q *GetCapacityReportQuery) setDepartureID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("departureID", err)
	}

	q.departureID = id
	return nil
}

// CapacityReportTypeBreakdown is the per-product-type slice of the report.
type CapacityReportTypeBreakdown struct {
	ProductType string
	Count       int64
	Weight      float64
	Volume      float64
}

// GetCapacityReportQueryResponse is the report read model. Summary
// percentages are whole numbers; the detail screens use the one-decimal
// usage query instead.
type GetCapacityReportQueryResponse struct {
	DepartureID          kernel.UUID
	Date                 time.Time
	ArrivalDate          *time.Time
	CarrierID            kernel.UUID
	AcceptedProductTypes string
	Active               bool
	CapacityWeight       float64
	CapacityVolume       float64
	UsedWeight           float64
	UsedVolume           float64
	PctWeight            int
	PctVolume            int
	Breakdown            []CapacityReportTypeBreakdown
}
