package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrDeactivateDepartureCommandIsNotConstructed = errors.New(
	"DeactivateDepartureCommand must be created via NewDeactivateDepartureCommand constructor",
)

// DeactivateDepartureCommand represents a request to close a departure.
// Departures are never physically deleted: the row and its assignment history
// survive, the slot just stops accepting products and drops out of the
// availability listings.
type DeactivateDepartureCommand struct { //nolint:recvcheck //using for validation
	departureID kernel.UUID
	actorID     kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeactivateDepartureCommand creates a command to deactivate the given departure.
func NewDeactivateDepartureCommand(actorID, departureID kernel.UUID) (DeactivateDepartureCommand, error) {
	command := DeactivateDepartureCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setActorID(actorID),
		command.setDepartureID(departureID),
	); err != nil {
		return DeactivateDepartureCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrDeactivateDepartureCommandIsNotConstructed if validation fails.
func (c DeactivateDepartureCommand) Validate() error {
	return c.guard.Validate(ErrDeactivateDepartureCommandIsNotConstructed)
}

// DepartureID returns the ID of the departure being deactivated.
func (c DeactivateDepartureCommand) DepartureID() kernel.UUID {
	return c.departureID
}

// ActorID returns the identity performing the operation.
func (c DeactivateDepartureCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *DeactivateDepartureCommand) setDepartureID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("departureID", err)
	}

	c.departureID = id
	return nil
}

func (c *DeactivateDepartureCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actorID", err)
	}

	c.actorID = actorID
	return nil
}
