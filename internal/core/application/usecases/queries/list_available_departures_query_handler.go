package queries

import (
	"context"

	"shipping/internal/core/domain/model/departure"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListAvailableDeparturesQueryHandler lists active future departures accepting
// a product type, annotated with occupancy. The accepted-type filter runs on
// the parsed label set, not on substring matching, so "Carga" never matches
// "Carga General".
type ListAvailableDeparturesQueryHandler struct {
	db *gorm.DB
}

// NewListAvailableDeparturesQueryHandler creates a handler for availability queries.
func NewListAvailableDeparturesQueryHandler(db *gorm.DB) ListAvailableDeparturesQueryHandler {
	return ListAvailableDeparturesQueryHandler{db: db}
}

// Handle executes the availability query. Departures are returned in date
// order; full departures are included with their IsFull flags set so the
// caller can render them disabled.
func (h ListAvailableDeparturesQueryHandler) Handle(
	ctx context.Context,
	query ListAvailableDeparturesQuery,
) ([]AvailableDeparture, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			d.id,
			d.date,
			d.carrier_id,
			d.accepted_product_types,
			d.capacity_weight,
			d.capacity_volume,
			COALESCE(SUM(p.weight), 0),
			COALESCE(SUM(p.volume), 0)
		FROM departures d
		LEFT JOIN products p ON p.departure_id = d.id
		WHERE d.active AND d.date >= ?
		GROUP BY d.id
		ORDER BY d.date
	`, query.After()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]AvailableDeparture, 0)
	for rows.Next() {
		var entry AvailableDeparture
		var id, carrierID uuid.UUID

		err = rows.Scan(
			&id,
			&entry.Date,
			&carrierID,
			&entry.AcceptedProductTypes,
			&entry.CapacityWeight,
			&entry.CapacityVolume,
			&entry.UsedWeight,
			&entry.UsedVolume,
		)
		if err != nil {
			return nil, err
		}

		types, typesErr := departure.ParseProductTypeSet(entry.AcceptedProductTypes)
		if typesErr != nil || !types.Contains(query.ProductType()) {
			continue
		}

		if entry.DepartureID, err = toKernelUUID(id); err != nil {
			return nil, err
		}
		if entry.CarrierID, err = toKernelUUID(carrierID); err != nil {
			return nil, err
		}

		entry.PctWeight = pctOneDecimal(entry.UsedWeight, entry.CapacityWeight)
		entry.PctVolume = pctOneDecimal(entry.UsedVolume, entry.CapacityVolume)
		entry.IsFullByWeight = dimensionAtCapacity(entry.UsedWeight, entry.CapacityWeight)
		entry.IsFullByVolume = dimensionAtCapacity(entry.UsedVolume, entry.CapacityVolume)
		entry.IsFull = entry.IsFullByWeight || entry.IsFullByVolume
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// dimensionAtCapacity mirrors the admission evaluator's already-full rule:
// at or beyond 100% for a positive capacity, always full for a zero capacity.
func dimensionAtCapacity(used, capacity float64) bool {
	if capacity > 0 {
		return used/capacity*100 >= 100
	}
	return true
}
