// Package departurerepo provides data transfer objects and mapping functions
// for departure persistence. Implements the repository pattern for the
// departure aggregate, handling conversion between domain entities and
// database representations.
package departurerepo

import (
	"time"

	"shipping/internal/core/domain/model/departure"
	"shipping/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DepartureDTO represents the database structure for persisting departures.
// The accepted product types are stored in their delimited string form; the
// set semantics (trim, dedupe, exact match) live in the domain value object.
type DepartureDTO struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Date                 time.Time `gorm:"index"`
	ArrivalDate          *time.Time
	CarrierID            uuid.UUID  `gorm:"type:uuid;index"`
	DestinationID        *uuid.UUID `gorm:"type:uuid"`
	AcceptedProductTypes string
	CapacityWeight       float64
	CapacityVolume       float64
	Active               bool `gorm:"index"`
}

// TableName specifies the database table name for departure entities.
func (DepartureDTO) TableName() string {
	return "departures"
}

// fromDomain converts a departure aggregate to its database representation.
func fromDomain(aggregate *departure.Departure) DepartureDTO {
	var destinationID *uuid.UUID
	if id := aggregate.DestinationID(); id != nil {
		raw := id.Bytes()
		destinationID = &raw
	}

	return DepartureDTO{
		ID:                   aggregate.ID().Bytes(),
		Date:                 aggregate.Date(),
		ArrivalDate:          aggregate.ArrivalDate(),
		CarrierID:            aggregate.CarrierID().Bytes(),
		DestinationID:        destinationID,
		AcceptedProductTypes: aggregate.AcceptedProductTypes().String(),
		CapacityWeight:       aggregate.CapacityWeight(),
		CapacityVolume:       aggregate.CapacityVolume(),
		Active:               aggregate.IsActive(),
	}
}

// toDomain converts a database DTO to a departure aggregate.
func toDomain(dto DepartureDTO) (*departure.Departure, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	carrierID, err := kernel.UUIDFromBytes(dto.CarrierID[:])
	if err != nil {
		return nil, err
	}

	var destinationID *kernel.UUID
	if dto.DestinationID != nil {
		dID, destErr := kernel.UUIDFromBytes((*dto.DestinationID)[:])
		if destErr != nil {
			return nil, destErr
		}

		destinationID = &dID
	}

	types, err := departure.ParseProductTypeSet(dto.AcceptedProductTypes)
	if err != nil {
		return nil, err
	}

	return departure.RestoreDeparture(
		id,
		dto.Date,
		carrierID,
		destinationID,
		dto.ArrivalDate,
		types,
		dto.CapacityWeight,
		dto.CapacityVolume,
		dto.Active,
	)
}
