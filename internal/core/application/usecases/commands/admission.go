package commands

import (
	"context"
	"errors"

	"shipping/internal/core/domain/model/departure"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/services"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"
)

// ErrProductTypeNotAccepted is returned when the target departure does not
// accept the product's type label.
var ErrProductTypeNotAccepted = errs.NewValueIsInvalidErrorWithCause(
	"productType", errors.New("the departure does not accept this product type"))

// admitToDeparture runs the capacity admission check for adding delta to the
// given departure. It locks the departure row for the remainder of the
// transaction, recomputes the current usage from product rows (excluding
// excludeProductID when set) and evaluates the admission rules.
//
// A nonexistent departure admits unconstrained: referential integrity is not
// admission control, so the caller proceeds without a lock or a quota check.
func admitToDeparture(
	ctx context.Context,
	departureRepo ports.DepartureRepository,
	productRepo ports.ProductRepository,
	departureID kernel.UUID,
	productType string,
	delta services.Load,
	excludeProductID *kernel.UUID,
) (*departure.Departure, error) {
	dep, err := departureRepo.GetForUpdate(ctx, departureID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if !dep.Accepts(productType) {
		return nil, ErrProductTypeNotAccepted
	}

	usage, err := productRepo.UsageForDeparture(ctx, dep.ID(), excludeProductID)
	if err != nil {
		return nil, err
	}

	capacity := services.Load{Weight: dep.CapacityWeight(), Volume: dep.CapacityVolume()}
	decision := services.NewAdmissionEvaluator().Evaluate(capacity, usage, delta)
	if !decision.Accepted {
		return nil, services.NewRejectionError(decision)
	}

	return dep, nil
}
