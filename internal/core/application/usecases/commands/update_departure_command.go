package commands

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/departure"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrUpdateDepartureCommandIsNotConstructed = errors.New(
	"UpdateDepartureCommand must be created via NewUpdateDepartureCommand constructor",
)

// UpdateDepartureCommand represents a partial update of a scheduled departure.
// Nil fields are left unchanged. Shrinking a capacity below the current load
// is permitted: existing assignments are never evicted, the departure merely
// reports over 100% and admits nothing further.
type UpdateDepartureCommand struct { //nolint:recvcheck //using for validation
	departureID          kernel.UUID
	actorID              kernel.UUID
	date                 *time.Time
	carrierID            *kernel.UUID
	destinationID        *kernel.UUID
	arrivalDate          *time.Time
	acceptedProductTypes *departure.ProductTypeSet
	capacityWeight       *float64
	capacityVolume       *float64

	guard guard.ConstructorGuard
}

// NewUpdateDepartureCommand creates a partial-update command. Nil pointers
// leave the corresponding field untouched; acceptedProductTypes, when set, is
// parsed from its delimited form.
func NewUpdateDepartureCommand(
	actorID kernel.UUID,
	departureID kernel.UUID,
	date *time.Time,
	carrierID *kernel.UUID,
	destinationID *kernel.UUID,
	arrivalDate *time.Time,
	acceptedProductTypes *string,
	capacityWeight *float64,
	capacityVolume *float64,
) (UpdateDepartureCommand, error) {
	command := UpdateDepartureCommand{
		date:          date,
		carrierID:     carrierID,
		destinationID: destinationID,
		arrivalDate:   arrivalDate,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setActorID(actorID),
		command.setDepartureID(departureID),
		command.setAcceptedProductTypes(acceptedProductTypes),
		command.setCapacities(capacityWeight, capacityVolume),
	); err != nil {
		return UpdateDepartureCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateDepartureCommandIsNotConstructed if validation fails.
func (c UpdateDepartureCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDepartureCommandIsNotConstructed)
}

// DepartureID returns the ID of the departure being updated.
func (c UpdateDepartureCommand) DepartureID() kernel.UUID {
	return c.departureID
}

// ActorID returns the identity performing the operation.
func (c UpdateDepartureCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Date returns the new departure date, nil when unchanged.
func (c UpdateDepartureCommand) Date() *time.Time {
	return c.date
}

// CarrierID returns the new carrier, nil when unchanged.
func (c UpdateDepartureCommand) CarrierID() *kernel.UUID {
	return c.carrierID
}

// DestinationID returns the new destination, nil when unchanged.
func (c UpdateDepartureCommand) DestinationID() *kernel.UUID {
	return c.destinationID
}

// ArrivalDate returns the new arrival date, nil when unchanged.
func (c UpdateDepartureCommand) ArrivalDate() *time.Time {
	return c.arrivalDate
}

// AcceptedProductTypes returns the new type set, nil when unchanged.
func (c UpdateDepartureCommand) AcceptedProductTypes() *departure.ProductTypeSet {
	return c.acceptedProductTypes
}

// CapacityWeight returns the new weight ceiling, nil when unchanged.
func (c UpdateDepartureCommand) CapacityWeight() *float64 {
	return c.capacityWeight
}

// CapacityVolume returns the new volume ceiling, nil when unchanged.
func (c UpdateDepartureCommand) CapacityVolume() *float64 {
	return c.capacityVolume
}

func (c *UpdateDepartureCommand) setDepartureID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("departureID", err)
	}

	c.departureID = id
	return nil
}

func (c *UpdateDepartureCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actorID", err)
	}

	c.actorID = actorID
	return nil
}

func (c *UpdateDepartureCommand) setAcceptedProductTypes(raw *string) error {
	if raw == nil {
		return nil
	}

	types, err := departure.ParseProductTypeSet(*raw)
	if err != nil {
		return err
	}

	c.acceptedProductTypes = &types
	return nil
}

func (c *UpdateDepartureCommand) setCapacities(capacityWeight, capacityVolume *float64) error {
	if capacityWeight != nil && *capacityWeight < 0 {
		return errs.NewValueIsInvalidError("capacityWeight")
	}
	if capacityVolume != nil && *capacityVolume < 0 {
		return errs.NewValueIsInvalidError("capacityVolume")
	}

	c.capacityWeight = capacityWeight
	c.capacityVolume = capacityVolume
	return nil
}
