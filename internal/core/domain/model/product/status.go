package product

import (
	"fmt"

	"shipping/internal/pkg/errs"
)

// Status represents the lifecycle state of a shipment product.
//
// State transitions:
//
//	Requested ──> Loaded ──> Delivered
//
// Requested products may be freely edited and reassigned between departures.
// Loaded products are physically on the transport; Delivered is final.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Requested is the initial status when a product is registered.
	Requested

	// Loaded indicates the product has been loaded onto its departure.
	Loaded

	// Delivered indicates the product reached its destination. Final state.
	Delivered
)

func statusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Requested: "Requested",
		Loaded:    "Loaded",
		Delivered: "Delivered",
	}
}

// Validate checks that the status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := statusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String implements fmt.Stringer; safe on any value.
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Load transitions the status to Loaded. Only Requested products can be loaded.
func (s Status) Load() (Status, error) {
	if s != Requested {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%s is not a valid status to load", s))
	}
	return Loaded, nil
}

// Deliver transitions the status to Delivered. Only Loaded products can be delivered.
func (s Status) Deliver() (Status, error) {
	if s != Loaded {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%s is not a valid status to deliver", s))
	}
	return Delivered, nil
}
