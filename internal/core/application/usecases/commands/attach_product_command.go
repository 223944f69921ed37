package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrAttachProductCommandIsNotConstructed = errors.New(
	"AttachProductCommand must be created via NewAttachProductCommand constructor",
)

// AttachProductCommand represents a request to register a product line item,
// optionally assigning it to a scheduled departure. When a departure is given
// the handler runs the capacity admission check before the product is stored.
//
// Example:
//
//	cmd, err := NewAttachProductCommand(actorID, shipmentID, "Cemento", "Carga General", &weight, &volume, &departureID)
//	if err != nil {
//	    return fmt.Errorf("invalid product data: %w", err)
//	}
//
//	handler := NewAttachProductCommandHandler(uowFactory, publisher)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    var rejection *services.RejectionError
//	    if errors.As(err, &rejection) {
//	        fmt.Println(rejection.Decision.Message())
//	    }
//	}
type AttachProductCommand struct { //nolint:recvcheck //using for validation
	productID   kernel.UUID
	actorID     kernel.UUID
	shipmentID  kernel.UUID
	description string
	productType string
	weight      *float64
	volume      *float64
	departureID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewAttachProductCommand creates a command to register a new product.
// Automatically generates a unique ID for the product. Measurements may be
// nil when the product has not been weighed yet; the departure is optional.
func NewAttachProductCommand(
	actorID kernel.UUID,
	shipmentID kernel.UUID,
	description string,
	productType string,
	weight *float64,
	volume *float64,
	departureID *kernel.UUID,
) (AttachProductCommand, error) {
	command := AttachProductCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setProductID(kernel.NewUUID()),
		command.setActorID(actorID),
		command.setShipmentID(shipmentID),
		command.setProductType(productType),
		command.setMeasurements(weight, volume),
		command.setDepartureID(departureID),
	); err != nil {
		return AttachProductCommand{}, err
	}

	command.description = description
	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAttachProductCommandIsNotConstructed if validation fails.
func (c AttachProductCommand) Validate() error {
	return c.guard.Validate(ErrAttachProductCommandIsNotConstructed)
}

// ProductID returns the generated product ID.
func (c AttachProductCommand) ProductID() kernel.UUID {
	return c.productID
}

// ActorID returns the identity performing the operation.
func (c AttachProductCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ShipmentID returns the owning shipment ID.
func (c AttachProductCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// Description returns the product description.
func (c AttachProductCommand) Description() string {
	return c.description
}

// ProductType returns the product type label.
func (c AttachProductCommand) ProductType() string {
	return c.productType
}

// Weight returns the declared weight, nil when not yet measured.
func (c AttachProductCommand) Weight() *float64 {
	return c.weight
}

// Volume returns the declared volume, nil when not yet measured.
func (c AttachProductCommand) Volume() *float64 {
	return c.volume
}

// DepartureID returns the target departure, nil for an unassigned product.
func (c AttachProductCommand) DepartureID() *kernel.UUID {
	return c.departureID
}

func (c *AttachProductCommand) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.productID = id
	return nil
}

func (c *AttachProductCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actorID", err)
	}

	c.actorID = actorID
	return nil
}

func (c *AttachProductCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shipmentID", err)
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *AttachProductCommand) setProductType(productType string) error {
	if productType == "" {
		return errs.NewValueIsRequiredError("productType")
	}

	c.productType = productType
	return nil
}

func (c *AttachProductCommand) setMeasurements(weight, volume *float64) error {
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

func (c *AttachProductCommand) setDepartureID(departureID *kernel.UUID) error {
	if departureID != nil {
		if err := departureID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("departureID", err)
		}
	}

	c.departureID = departureID
	return nil
}
