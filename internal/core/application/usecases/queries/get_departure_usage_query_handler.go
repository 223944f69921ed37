package queries

import (
	"context"
	"database/sql"
	"errors"
	"math"

	"shipping/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetDepartureUsageQueryHandler computes a departure's current load with a
// direct SQL aggregation over the product rows. Reads are not serialized
// against in-flight assignments; the figures are a snapshot.
type GetDepartureUsageQueryHandler struct {
	db *gorm.DB
}

// NewGetDepartureUsageQueryHandler creates a handler for usage queries.
func NewGetDepartureUsageQueryHandler(db *gorm.DB) GetDepartureUsageQueryHandler {
	return GetDepartureUsageQueryHandler{db: db}
}

// Handle executes the usage query.
// Returns errs.ErrObjectNotFound when the departure does not exist.
func (h GetDepartureUsageQueryHandler) Handle(
	ctx context.Context,
	query GetDepartureUsageQuery,
) (GetDepartureUsageQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDepartureUsageQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			d.capacity_weight,
			d.capacity_volume,
			COALESCE(SUM(p.weight), 0),
			COALESCE(SUM(p.volume), 0)
		FROM departures d
		LEFT JOIN products p ON p.departure_id = d.id
		WHERE d.id = ?
		GROUP BY d.id
	`, query.DepartureID().Bytes()).Row()

	response := GetDepartureUsageQueryResponse{DepartureID: query.DepartureID()}
	err := row.Scan(
		&response.CapacityWeight,
		&response.CapacityVolume,
		&response.UsedWeight,
		&response.UsedVolume,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDepartureUsageQueryResponse{}, errs.NewObjectNotFoundError("departureID", query.DepartureID())
	}
	if err != nil {
		return GetDepartureUsageQueryResponse{}, err
	}

	response.PctWeight = pctOneDecimal(response.UsedWeight, response.CapacityWeight)
	response.PctVolume = pctOneDecimal(response.UsedVolume, response.CapacityVolume)
	return response, nil
}

// pctOneDecimal returns used/capacity as a percentage rounded to one decimal,
// 0 for zero capacity.
func pctOneDecimal(used, capacity float64) float64 {
	if capacity <= 0 {
		return 0
	}
	return math.Round(used/capacity*1000) / 10
}

// pctInteger returns used/capacity as a whole percentage, 0 for zero capacity.
func pctInteger(used, capacity float64) int {
	if capacity <= 0 {
		return 0
	}
	return int(math.Round(used / capacity * 100))
}
