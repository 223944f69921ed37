package departure

import (
	"errors"
	"fmt"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

// Domain errors for departure operations.
var (
	// ErrDateIsRequired is returned when creating a departure without a departure date.
	ErrDateIsRequired = errs.NewValueIsRequiredError("date")
	// ErrArrivalNotAfterDeparture is returned when the arrival date is not
	// strictly later than the departure date.
	ErrArrivalNotAfterDeparture = errs.NewValueIsInvalidErrorWithCause(
		"arrivalDate", errors.New("arrival date must be strictly after the departure date"))
	// ErrDepartureIsNotConstructed is returned when using an improperly initialized Departure.
	ErrDepartureIsNotConstructed = errors.New("Departure must be created via NewDeparture constructor")
)

// Departure is the aggregate root for a scheduled transport slot.
//
// Key responsibilities:
//   - Holding the declared weight/volume quota (the admission ceiling)
//   - Restricting assignments to the accepted product-type labels
//   - Validating the schedule (arrival strictly after departure)
//   - Tracking the activity flag used to exclude past or closed slots
//
// Business rules:
//   - Capacities are non-negative; a zero capacity means the dimension is
//     immediately full for any positive contribution
//   - A departure is never physically deleted once it has historical
//     significance; it is deactivated instead
//   - Usage totals are not stored here; the quota ledger recomputes them
//     from product rows on every admission check
type Departure struct {
	// id uniquely identifies the departure
	id kernel.UUID
	// date is the calendar date the transport leaves
	date time.Time
	// carrierID references the vessel/vehicle performing the run
	carrierID kernel.UUID
	// destinationID optionally references the destination port
	destinationID *kernel.UUID
	// arrivalDate is the optional expected arrival at the destination
	arrivalDate *time.Time
	// acceptedProductTypes restricts which product types may be assigned
	acceptedProductTypes ProductTypeSet
	// capacityWeight is the declared weight ceiling
	capacityWeight float64
	// capacityVolume is the declared volume ceiling
	capacityVolume float64
	// active marks whether the departure accepts new assignments
	active bool
	// guard ensures the departure was properly constructed
	guard guard.ConstructorGuard
}

// NewDeparture creates a new active Departure with the given schedule and quota.
//
// Validation rules applied:
//   - id and carrierID must be valid UUIDs
//   - date is required; arrivalDate, when present, must be strictly later
//   - capacities must be non-negative
//   - the accepted product-type set must not be empty
func NewDeparture(
	id kernel.UUID,
	date time.Time,
	carrierID kernel.UUID,
	destinationID *kernel.UUID,
	arrivalDate *time.Time,
	acceptedProductTypes ProductTypeSet,
	capacityWeight float64,
	capacityVolume float64,
) (*Departure, error) {
	d := &Departure{
		active: true,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setCarrierID(carrierID),
		d.setDestinationID(destinationID),
		d.setSchedule(date, arrivalDate),
		d.setAcceptedProductTypes(acceptedProductTypes),
		d.setCapacityWeight(capacityWeight),
		d.setCapacityVolume(capacityVolume),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDeparture reconstructs a Departure from persistent storage, including
// its activity flag. The restored aggregate behaves identically to one created
// through NewDeparture.
func RestoreDeparture(
	id kernel.UUID,
	date time.Time,
	carrierID kernel.UUID,
	destinationID *kernel.UUID,
	arrivalDate *time.Time,
	acceptedProductTypes ProductTypeSet,
	capacityWeight float64,
	capacityVolume float64,
	active bool,
) (*Departure, error) {
	d := &Departure{
		active: active,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setCarrierID(carrierID),
		d.setDestinationID(destinationID),
		d.setSchedule(date, arrivalDate),
		d.setAcceptedProductTypes(acceptedProductTypes),
		d.setCapacityWeight(capacityWeight),
		d.setCapacityVolume(capacityVolume),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// IsEqual compares two departures by identity.
func (d *Departure) IsEqual(other *Departure) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// Validate checks that the Departure was created via NewDeparture or RestoreDeparture.
func (d *Departure) Validate() error {
	if d == nil {
		return ErrDepartureIsNotConstructed
	}
	return d.guard.Validate(ErrDepartureIsNotConstructed)
}

// ID returns the unique identifier of the departure.
func (d *Departure) ID() kernel.UUID {
	return d.id
}

// Date returns the scheduled departure date.
func (d *Departure) Date() time.Time {
	return d.date
}

// CarrierID returns the reference to the vessel or vehicle.
func (d *Departure) CarrierID() kernel.UUID {
	return d.carrierID
}

// DestinationID returns the optional destination port reference.
func (d *Departure) DestinationID() *kernel.UUID {
	return d.destinationID
}

// ArrivalDate returns the optional expected arrival date.
func (d *Departure) ArrivalDate() *time.Time {
	return d.arrivalDate
}

// AcceptedProductTypes returns the set of product-type labels this departure accepts.
func (d *Departure) AcceptedProductTypes() ProductTypeSet {
	return d.acceptedProductTypes
}

// CapacityWeight returns the declared weight ceiling.
func (d *Departure) CapacityWeight() float64 {
	return d.capacityWeight
}

// CapacityVolume returns the declared volume ceiling.
func (d *Departure) CapacityVolume() float64 {
	return d.capacityVolume
}

// IsActive reports whether the departure accepts new assignments.
func (d *Departure) IsActive() bool {
	return d.active
}

// Accepts reports whether the given product-type label may be assigned here.
func (d *Departure) Accepts(productType string) bool {
	return d.acceptedProductTypes.Contains(productType)
}

// Reschedule changes the departure date and optional arrival date together,
// re-validating that the arrival stays strictly after the departure.
func (d *Departure) Reschedule(date time.Time, arrivalDate *time.Time) error {
	return d.setSchedule(date, arrivalDate)
}

// ChangeCapacity updates the declared weight/volume ceiling.
// Shrinking capacity below the current load is permitted: existing assignments
// are preserved and the departure simply reads as over 100% until products are
// removed. Only new admissions are blocked.
func (d *Departure) ChangeCapacity(capacityWeight, capacityVolume float64) error {
	return errors.Join(
		d.setCapacityWeight(capacityWeight),
		d.setCapacityVolume(capacityVolume),
	)
}

// ChangeAcceptedProductTypes replaces the accepted product-type set.
func (d *Departure) ChangeAcceptedProductTypes(types ProductTypeSet) error {
	return d.setAcceptedProductTypes(types)
}

// ChangeCarrier replaces the carrier reference.
func (d *Departure) ChangeCarrier(carrierID kernel.UUID) error {
	return d.setCarrierID(carrierID)
}

// ChangeDestination replaces the optional destination reference.
func (d *Departure) ChangeDestination(destinationID *kernel.UUID) error {
	return d.setDestinationID(destinationID)
}

// Deactivate excludes the departure from future assignment while retaining history.
func (d *Departure) Deactivate() {
	d.active = false
}

// Activate re-enables the departure for assignment.
func (d *Departure) Activate() {
	d.active = true
}

func (d *Departure) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Departure) setCarrierID(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("carrierId", err)
	}
	d.carrierID = carrierID
	return nil
}

func (d *Departure) setDestinationID(destinationID *kernel.UUID) error {
	if destinationID != nil {
		if err := destinationID.Validate(); err != nil {
			return err
		}
	}
	d.destinationID = destinationID
	return nil
}

// setSchedule validates the date pair as a unit: the arrival, when present,
// must be strictly after the departure.
func (d *Departure) setSchedule(date time.Time, arrivalDate *time.Time) error {
	if date.IsZero() {
		return ErrDateIsRequired
	}
	if arrivalDate != nil && !arrivalDate.After(date) {
		return ErrArrivalNotAfterDeparture
	}

	d.date = date
	d.arrivalDate = arrivalDate
	return nil
}

func (d *Departure) setAcceptedProductTypes(types ProductTypeSet) error {
	if err := types.Validate(); err != nil {
		return err
	}
	d.acceptedProductTypes = types
	return nil
}

func (d *Departure) setCapacityWeight(capacityWeight float64) error {
	if capacityWeight < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"capacityWeight", fmt.Errorf("%v is negative", capacityWeight))
	}
	d.capacityWeight = capacityWeight
	return nil
}

func (d *Departure) setCapacityVolume(capacityVolume float64) error {
	if capacityVolume < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"capacityVolume", fmt.Errorf("%v is negative", capacityVolume))
	}
	d.capacityVolume = capacityVolume
	return nil
}
