package queries

import (
	"context"
	"database/sql"
	"errors"

	"shipping/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCapacityReportQueryHandler assembles the capacity report of a departure:
// the departure header, the per-product-type breakdown and the occupancy
// totals with whole-number percentages.
type GetCapacityReportQueryHandler struct {
	db *gorm.DB
}

// NewGetCapacityReportQueryHandler creates a handler for capacity report queries.
func NewGetCapacityReportQueryHandler(db *gorm.DB) GetCapacityReportQueryHandler {
	return GetCapacityReportQueryHandler{db: db}
}

// Handle executes the report query.
// Returns errs.ErrObjectNotFound when the departure does not exist.
func (h GetCapacityReportQueryHandler) Handle(
	ctx context.Context,
	query GetCapacityReportQuery,
) (GetCapacityReportQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCapacityReportQueryResponse{}, err
	}

	response := GetCapacityReportQueryResponse{DepartureID: query.DepartureID()}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			date,
			arrival_date,
			carrier_id,
			accepted_product_types,
			active,
			capacity_weight,
			capacity_volume
		FROM departures
		WHERE id = ?
	`, query.DepartureID().Bytes()).Row()

	var carrierID uuid.UUID
	err := row.Scan(
		&response.Date,
		&response.ArrivalDate,
		&carrierID,
		&response.AcceptedProductTypes,
		&response.Active,
		&response.CapacityWeight,
		&response.CapacityVolume,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetCapacityReportQueryResponse{}, errs.NewObjectNotFoundError("departureID", query.DepartureID())
	}
	if err != nil {
		return GetCapacityReportQueryResponse{}, err
	}

	if response.CarrierID, err = toKernelUUID(carrierID); err != nil {
		return GetCapacityReportQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			product_type,
			COUNT(*),
			COALESCE(SUM(weight), 0),
			COALESCE(SUM(volume), 0)
		FROM products
		WHERE departure_id = ?
		GROUP BY product_type
		ORDER BY product_type
	`, query.DepartureID().Bytes()).Rows()
	if err != nil {
		return GetCapacityReportQueryResponse{}, err
	}
	defer rows.Close()

	response.Breakdown = make([]CapacityReportTypeBreakdown, 0)
	for rows.Next() {
		var slice CapacityReportTypeBreakdown
		if err = rows.Scan(&slice.ProductType, &slice.Count, &slice.Weight, &slice.Volume); err != nil {
			return GetCapacityReportQueryResponse{}, err
		}

		response.UsedWeight += slice.Weight
		response.UsedVolume += slice.Volume
		response.Breakdown = append(response.Breakdown, slice)
	}
	if err = rows.Err(); err != nil {
		return GetCapacityReportQueryResponse{}, err
	}

	response.PctWeight = pctInteger(response.UsedWeight, response.CapacityWeight)
	response.PctVolume = pctInteger(response.UsedVolume, response.CapacityVolume)
	return response, nil
}
