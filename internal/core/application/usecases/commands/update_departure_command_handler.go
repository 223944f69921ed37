package commands

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/audit"
)

// UpdateDepartureCommandHandler handles partial departure updates. The
// aggregate revalidates schedule consistency, so moving the departure date
// past a previously set arrival date is rejected.
type UpdateDepartureCommandHandler struct {
	uowFactory DepartureUoWFactory
}

// NewUpdateDepartureCommandHandler creates a handler for departure updates.
func NewUpdateDepartureCommandHandler(uowFactory DepartureUoWFactory) UpdateDepartureCommandHandler {
	return UpdateDepartureCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the departure update command.
// Returns errs.ErrObjectNotFound when the departure does not exist.
func (h *UpdateDepartureCommandHandler) Handle(ctx context.Context, cmd UpdateDepartureCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	departureRepo := uow.DepartureRepository()
	departureEntity, err := departureRepo.Get(ctx, cmd.DepartureID())
	if err != nil {
		return err
	}

	if cmd.Date() != nil || cmd.ArrivalDate() != nil {
		date := departureEntity.Date()
		if cmd.Date() != nil {
			date = *cmd.Date()
		}
		arrival := departureEntity.ArrivalDate()
		if cmd.ArrivalDate() != nil {
			arrival = cmd.ArrivalDate()
		}
		if err = departureEntity.Reschedule(date, arrival); err != nil {
			return err
		}
	}

	if cmd.CarrierID() != nil {
		if err = departureEntity.ChangeCarrier(*cmd.CarrierID()); err != nil {
			return err
		}
	}
	if cmd.DestinationID() != nil {
		if err = departureEntity.ChangeDestination(cmd.DestinationID()); err != nil {
			return err
		}
	}
	if cmd.AcceptedProductTypes() != nil {
		if err = departureEntity.ChangeAcceptedProductTypes(*cmd.AcceptedProductTypes()); err != nil {
			return err
		}
	}
	if cmd.CapacityWeight() != nil || cmd.CapacityVolume() != nil {
		capacityWeight := departureEntity.CapacityWeight()
		if cmd.CapacityWeight() != nil {
			capacityWeight = *cmd.CapacityWeight()
		}
		capacityVolume := departureEntity.CapacityVolume()
		if cmd.CapacityVolume() != nil {
			capacityVolume = *cmd.CapacityVolume()
		}
		if err = departureEntity.ChangeCapacity(capacityWeight, capacityVolume); err != nil {
			return err
		}
	}

	if err = departureRepo.Update(ctx, departureEntity); err != nil {
		return err
	}

	entry, err := audit.NewEntry(
		cmd.ActorID(), "ACTUALIZAR", "embarque", departureEntity.ID(),
		"Embarque actualizado",
		time.Now())
	if err != nil {
		return err
	}
	if err = uow.AuditLogRepository().Add(ctx, entry); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
