package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrUpdateProductCommandIsNotConstructed = errors.New(
	"UpdateProductCommand must be created via NewUpdateProductCommand constructor",
)

// UpdateProductCommand represents a request to edit a product's description,
// type, measurements or departure assignment. The command carries the full
// desired state; a nil departure ID unassigns the product.
//
// When the target departure has not changed, the admission check excludes the
// product's own previous contribution, so growing a product only has to fit
// within the quota left by everything else.
type UpdateProductCommand struct { //nolint:recvcheck //using for validation
	productID   kernel.UUID
	actorID     kernel.UUID
	description string
	productType string
	weight      *float64
	volume      *float64
	departureID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewUpdateProductCommand creates a command carrying the product's new state.
func NewUpdateProductCommand(
	actorID kernel.UUID,
	productID kernel.UUID,
	description string,
	productType string,
	weight *float64,
	volume *float64,
	departureID *kernel.UUID,
) (UpdateProductCommand, error) {
	command := UpdateProductCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setActorID(actorID),
		command.setProductID(productID),
		command.setProductType(productType),
		command.setMeasurements(weight, volume),
		command.setDepartureID(departureID),
	); err != nil {
		return UpdateProductCommand{}, err
	}

	command.description = description
	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateProductCommandIsNotConstructed if validation fails.
func (c UpdateProductCommand) Validate() error {
	return c.guard.Validate(ErrUpdateProductCommandIsNotConstructed)
}

// ProductID returns the ID of the product being edited.
func (c UpdateProductCommand) ProductID() kernel.UUID {
	return c.productID
}

// ActorID returns the identity performing the operation.
func (c UpdateProductCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Description returns the new product description.
func (c UpdateProductCommand) Description() string {
	return c.description
}

// ProductType returns the new product type label.
func (c UpdateProductCommand) ProductType() string {
	return c.productType
}

// Weight returns the new weight, nil when not measured.
func (c UpdateProductCommand) Weight() *float64 {
	return c.weight
}

// Volume returns the new volume, nil when not measured.
func (c UpdateProductCommand) Volume() *float64 {
	return c.volume
}

// DepartureID returns the new departure, nil to unassign.
func (c UpdateProductCommand) DepartureID() *kernel.UUID {
	return c.departureID
}

func (c *UpdateProductCommand) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("productID", err)
	}

	c.productID = id
	return nil
}

func (c *UpdateProductCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actorID", err)
	}

	c.actorID = actorID
	return nil
}

func (c *UpdateProductCommand) setProductType(productType string) error {
	if productType == "" {
		return errs.NewValueIsRequiredError("productType")
	}

	c.productType = productType
	return nil
}

func (c *UpdateProductCommand) setMeasurements(weight, volume *float64) error {
	if weight != nil && *weight < 0 {
		return errs.NewValueIsInvalidError("weight")
	}
	if volume != nil && *volume < 0 {
		return errs.NewValueIsInvalidError("volume")
	}

	c.weight = weight
	c.volume = volume
	return nil
}

func (c *UpdateProductCommand) setDepartureID(departureID *kernel.UUID) error {
	if departureID != nil {
		if err := departureID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("departureID", err)
		}
	}

	c.departureID = departureID
	return nil
}
