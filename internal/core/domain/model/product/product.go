package product

import (
	"errors"
	"fmt"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

// Domain errors for product operations.
var (
	// ErrProductTypeIsRequired is returned when creating a product without a type label.
	ErrProductTypeIsRequired = errs.NewValueIsRequiredError("productType")
	// ErrProductIsNotConstructed is returned when using an improperly initialized Product.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")
)

// Product is the aggregate root for a shipment line item.
//
// Weight and volume are optional: nil means "not yet measured" and contributes
// zero to a departure's load. The departure assignment is optional: nil means
// the product is unscheduled and consumes no capacity anywhere.
type Product struct {
	// id uniquely identifies the product
	id kernel.UUID
	// shipmentID references the shipment this line item belongs to
	shipmentID kernel.UUID
	// description is the free-text content description
	description string
	// weight is the measured weight, nil when unknown
	weight *float64
	// volume is the measured volume, nil when unknown
	volume *float64
	// productType is the label matched against a departure's accepted set
	productType string
	// departureID is the optional assignment to a scheduled departure
	departureID *kernel.UUID
	// status is the lifecycle state
	status Status
	// guard ensures the product was properly constructed
	guard guard.ConstructorGuard
}

// NewProduct creates a new Product in Requested status, unassigned unless a
// departure is given. Measurements may be nil when not yet known; when present
// they must be non-negative.
func NewProduct(
	id kernel.UUID,
	shipmentID kernel.UUID,
	description string,
	productType string,
	weight *float64,
	volume *float64,
	departureID *kernel.UUID,
) (*Product, error) {
	p := &Product{
		status: Requested,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setShipmentID(shipmentID),
		p.setProductType(productType),
		p.setMeasurements(weight, volume),
		p.setDepartureID(departureID),
	); err != nil {
		return nil, err
	}

	p.description = description
	return p, nil
}

// RestoreProduct reconstructs a Product from persistent storage.
func RestoreProduct(
	id kernel.UUID,
	shipmentID kernel.UUID,
	description string,
	productType string,
	weight *float64,
	volume *float64,
	departureID *kernel.UUID,
	status Status,
) (*Product, error) {
	p := &Product{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setShipmentID(shipmentID),
		p.setProductType(productType),
		p.setMeasurements(weight, volume),
		p.setDepartureID(departureID),
		p.setStatus(status),
	); err != nil {
		return nil, err
	}

	p.description = description
	return p, nil
}

// IsEqual compares two products by identity.
func (p *Product) IsEqual(other *Product) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// Validate checks that the Product was created via NewProduct or RestoreProduct.
func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

// ID returns the unique identifier of the product.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// ShipmentID returns the owning shipment reference.
func (p *Product) ShipmentID() kernel.UUID {
	return p.shipmentID
}

// Description returns the free-text content description.
func (p *Product) Description() string {
	return p.description
}

// ProductType returns the type label of the product.
func (p *Product) ProductType() string {
	return p.productType
}

// Weight returns the measured weight, nil when not yet measured.
func (p *Product) Weight() *float64 {
	return p.weight
}

// Volume returns the measured volume, nil when not yet measured.
func (p *Product) Volume() *float64 {
	return p.volume
}

// DepartureID returns the assigned departure, nil when unscheduled.
func (p *Product) DepartureID() *kernel.UUID {
	return p.departureID
}

// Status returns the lifecycle state of the product.
func (p *Product) Status() Status {
	return p.status
}

// CapacityWeight returns the weight this product contributes to a departure's
// load: the measured weight, or zero when not yet measured.
func (p *Product) CapacityWeight() float64 {
	if p.weight == nil {
		return 0
	}
	return *p.weight
}

// CapacityVolume returns the volume contribution, zero when not yet measured.
func (p *Product) CapacityVolume() float64 {
	if p.volume == nil {
		return 0
	}
	return *p.volume
}

// IsScheduled reports whether the product is assigned to a departure.
func (p *Product) IsScheduled() bool {
	return p.departureID != nil
}

// AssignToDeparture links the product to a scheduled departure.
// Admission control happens in the assignment command, which must hold the
// departure row lock while calling this.
func (p *Product) AssignToDeparture(departureID kernel.UUID) error {
	if err := departureID.Validate(); err != nil {
		return err
	}
	p.departureID = &departureID
	return nil
}

// Unassign removes the departure link, freeing its capacity contribution.
func (p *Product) Unassign() {
	p.departureID = nil
}

// SetMeasurements updates weight and volume. Passing nil clears a measurement
// back to "not yet measured".
func (p *Product) SetMeasurements(weight, volume *float64) error {
	return p.setMeasurements(weight, volume)
}

// SetDescription updates the free-text description.
func (p *Product) SetDescription(description string) {
	p.description = description
}

// ChangeProductType replaces the type label.
func (p *Product) ChangeProductType(productType string) error {
	return p.setProductType(productType)
}

// MarkLoaded transitions the product to Loaded.
func (p *Product) MarkLoaded() error {
	next, err := p.status.Load()
	if err != nil {
		return err
	}
	p.status = next
	return nil
}

// MarkDelivered transitions the product to Delivered.
func (p *Product) MarkDelivered() error {
	next, err := p.status.Deliver()
	if err != nil {
		return err
	}
	p.status = next
	return nil
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shipmentId", err)
	}
	p.shipmentID = shipmentID
	return nil
}

func (p *Product) setProductType(productType string) error {
	if productType == "" {
		return ErrProductTypeIsRequired
	}
	p.productType = productType
	return nil
}

func (p *Product) setMeasurements(weight, volume *float64) error {
	if weight != nil && *weight < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"weight", fmt.Errorf("%v is negative", *weight))
	}
	if volume != nil && *volume < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"volume", fmt.Errorf("%v is negative", *volume))
	}

	p.weight = weight
	p.volume = volume
	return nil
}

func (p *Product) setDepartureID(departureID *kernel.UUID) error {
	if departureID != nil {
		if err := departureID.Validate(); err != nil {
			return err
		}
	}
	p.departureID = departureID
	return nil
}

func (p *Product) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	p.status = status
	return nil
}
