package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrRemoveProductCommandIsNotConstructed = errors.New(
	"RemoveProductCommand must be created via NewRemoveProductCommand constructor",
)

// RemoveProductCommand represents a request to delete a product. Removing an
// assigned product implicitly frees its departure capacity: the next usage
// recomputation simply no longer sees the row.
type RemoveProductCommand struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	actorID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewRemoveProductCommand creates a command to delete the given product.
func NewRemoveProductCommand(actorID, productID kernel.UUID) (RemoveProductCommand, error) {
	command := RemoveProductCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setActorID(actorID),
		command.setProductID(productID),
	); err != nil {
		return RemoveProductCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRemoveProductCommandIsNotConstructed if validation fails.
func (c RemoveProductCommand) Validate() error {
	return c.guard.Validate(ErrRemoveProductCommandIsNotConstructed)
}

// ProductID returns the ID of the product being removed.
func (c RemoveProductCommand) ProductID() kernel.UUID {
	return c.productID
}

// ActorID returns the identity performing the operation.
func (c RemoveProductCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *RemoveProductCommand) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("productID", err)
	}

	c.productID = id
	return nil
}

func (c *RemoveProductCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actorID", err)
	}

	c.actorID = actorID
	return nil
}
