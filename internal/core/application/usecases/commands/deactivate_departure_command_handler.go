package commands

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/audit"
)

// DeactivateDepartureCommandHandler handles the soft deactivation of a departure.
type DeactivateDepartureCommandHandler struct {
	uowFactory DepartureUoWFactory
}

// NewDeactivateDepartureCommandHandler creates a handler for departure deactivation.
func NewDeactivateDepartureCommandHandler(uowFactory DepartureUoWFactory) DeactivateDepartureCommandHandler {
	return DeactivateDepartureCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the departure deactivation command.
// Deactivating an already inactive departure is a no-op, not an error.
// Returns errs.ErrObjectNotFound when the departure does not exist.
func (h *DeactivateDepartureCommandHandler) Handle(ctx context.Context, cmd DeactivateDepartureCommand) error {
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

	departureEntity.Deactivate()
	if err = departureRepo.Update(ctx, departureEntity); err != nil {
		return err
	}

	entry, err := audit.NewEntry(
		cmd.ActorID(), "DESACTIVAR", "embarque", departureEntity.ID(),
		"Embarque desactivado",
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
