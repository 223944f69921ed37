package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListDeparturesQueryHandler retrieves the departure schedule for a date range.
type ListDeparturesQueryHandler struct {
	db *gorm.DB
}

// NewListDeparturesQueryHandler creates a handler for schedule queries.
func NewListDeparturesQueryHandler(db *gorm.DB) ListDeparturesQueryHandler {
	return ListDeparturesQueryHandler{db: db}
}

// Handle executes the schedule query. Returns departures in date order,
// inactive ones included so the calendar shows history.
func (h ListDeparturesQueryHandler) Handle(
	ctx context.Context,
	query ListDeparturesQuery,
) ([]DepartureListEntry, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			date,
			arrival_date,
			carrier_id,
			destination_id,
			accepted_product_types,
			capacity_weight,
			capacity_volume,
			active
		FROM departures
		WHERE date BETWEEN ? AND ?
		ORDER BY date, id
	`, query.From(), query.To()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]DepartureListEntry, 0)
	for rows.Next() {
		var entry DepartureListEntry
		var id, carrierID uuid.UUID
		var destinationID uuid.NullUUID

		err = rows.Scan(
			&id,
			&entry.Date,
			&entry.ArrivalDate,
			&carrierID,
			&destinationID,
			&entry.AcceptedProductTypes,
			&entry.CapacityWeight,
			&entry.CapacityVolume,
			&entry.Active,
		)
		if err != nil {
			return nil, err
		}

		if entry.DepartureID, err = toKernelUUID(id); err != nil {
			return nil, err
		}
		if entry.CarrierID, err = toKernelUUID(carrierID); err != nil {
			return nil, err
		}
		if entry.DestinationID, err = toKernelUUIDPtr(destinationID); err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
