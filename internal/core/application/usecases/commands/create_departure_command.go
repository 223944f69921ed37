package commands

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/departure"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrCreateDepartureCommandIsNotConstructed = errors.New(
	"CreateDepartureCommand must be created via NewCreateDepartureCommand constructor",
)

// CreateDepartureCommand represents a request to schedule a new departure.
// The accepted product types arrive as a delimited string, as entered on the
// scheduling screens, and are parsed into a ProductTypeSet up front.
//
// Example:
//
//	cmd, err := NewCreateDepartureCommand(
//	    actorID, date, carrierID, nil, &arrival, "Carga General, Refrigerado", 12000, 80)
//	if err != nil {
//	    return fmt.Errorf("invalid departure data: %w", err)
//	}
type CreateDepartureCommand struct { //nolint:recvcheck //using for validation
	departureID          kernel.UUID
	actorID              kernel.UUID
	date                 time.Time
	carrierID            kernel.UUID
	destinationID        *kernel.UUID
	arrivalDate          *time.Time
	acceptedProductTypes departure.ProductTypeSet
	capacityWeight       float64
	capacityVolume       float64

	guard guard.ConstructorGuard
}

// NewCreateDepartureCommand creates a command to schedule a departure.
// Automatically generates a unique ID. Schedule consistency (arrival strictly
// after departure) is enforced by the aggregate in the handler.
func NewCreateDepartureCommand(
	actorID kernel.UUID,
	date time.Time,
	carrierID kernel.UUID,
	destinationID *kernel.UUID,
	arrivalDate *time.Time,
	acceptedProductTypes string,
	capacityWeight float64,
	capacityVolume float64,
) (CreateDepartureCommand, error) {
	command := CreateDepartureCommand{
		destinationID: destinationID,
		arrivalDate:   arrivalDate,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setDepartureID(kernel.NewUUID()),
		command.setActorID(actorID),
		command.setDate(date),
		command.setCarrierID(carrierID),
		command.setAcceptedProductTypes(acceptedProductTypes),
		command.setCapacities(capacityWeight, capacityVolume),
	); err != nil {
		return CreateDepartureCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateDepartureCommandIsNotConstructed if validation fails.
func (c CreateDepartureCommand) Validate() error {
	return c.guard.Validate(ErrCreateDepartureCommandIsNotConstructed)
}

// DepartureID returns the generated departure ID.
func (c CreateDepartureCommand) DepartureID() kernel.UUID {
	return c.departureID
}

// ActorID returns the identity performing the operation.
func (c CreateDepartureCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Date returns the departure date.
func (c CreateDepartureCommand) Date() time.Time {
	return c.date
}

// CarrierID returns the carrier performing the run.
func (c CreateDepartureCommand) CarrierID() kernel.UUID {
	return c.carrierID
}

// DestinationID returns the optional destination reference.
func (c CreateDepartureCommand) DestinationID() *kernel.UUID {
	return c.destinationID
}

// ArrivalDate returns the optional expected arrival date.
func (c CreateDepartureCommand) ArrivalDate() *time.Time {
	return c.arrivalDate
}

// AcceptedProductTypes returns the parsed accepted type set.
func (c CreateDepartureCommand) AcceptedProductTypes() departure.ProductTypeSet {
	return c.acceptedProductTypes
}

// CapacityWeight returns the declared weight ceiling.
func (c CreateDepartureCommand) CapacityWeight() float64 {
	return c.capacityWeight
}

// CapacityVolume returns the declared volume ceiling.
func (c CreateDepartureCommand) CapacityVolume() float64 {
	return c.capacityVolume
}

func (c *CreateDepartureCommand) setDepartureID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.departureID = id
	return nil
}

func (c *CreateDepartureCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actorID", err)
	}

	c.actorID = actorID
	return nil
}

func (c *CreateDepartureCommand) setDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("date")
	}

	c.date = date
	return nil
}

func (c *CreateDepartureCommand) setCarrierID(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("carrierID", err)
	}

	c.carrierID = carrierID
	return nil
}

func (c *CreateDepartureCommand) setAcceptedProductTypes(raw string) error {
	types, err := departure.ParseProductTypeSet(raw)
	if err != nil {
		return err
	}

	c.acceptedProductTypes = types
	return nil
}

func (c *CreateDepartureCommand) setCapacities(capacityWeight, capacityVolume float64) error {
	if capacityWeight < 0 {
		return errs.NewValueIsInvalidError("capacityWeight")
	}
	if capacityVolume < 0 {
		return errs.NewValueIsInvalidError("capacityVolume")
	}

	c.capacityWeight = capacityWeight
	c.capacityVolume = capacityVolume
	return nil
}
