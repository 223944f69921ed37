package commands

import (
	"context"
	"fmt"
	"time"

	"shipping/internal/core/domain/model/audit"
	"shipping/internal/core/domain/model/departure"
)

// CreateDepartureCommandHandler handles departure scheduling.
type CreateDepartureCommandHandler struct {
	uowFactory DepartureUoWFactory
}

// NewCreateDepartureCommandHandler creates a handler for departure scheduling.
func NewCreateDepartureCommandHandler(uowFactory DepartureUoWFactory) CreateDepartureCommandHandler {
	return CreateDepartureCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the departure creation command.
// Creates a new active departure and persists it with its audit entry.
func (h *CreateDepartureCommandHandler) Handle(ctx context.Context, cmd CreateDepartureCommand) error {
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

	departureEntity, err := departure.NewDeparture(
		cmd.DepartureID(),
		cmd.Date(),
		cmd.CarrierID(),
		cmd.DestinationID(),
		cmd.ArrivalDate(),
		cmd.AcceptedProductTypes(),
		cmd.CapacityWeight(),
		cmd.CapacityVolume(),
	)
	if err != nil {
		return err
	}

	if err = uow.DepartureRepository().Add(ctx, departureEntity); err != nil {
		return err
	}

	entry, err := audit.NewEntry(
		cmd.ActorID(), "CREAR", "embarque", departureEntity.ID(),
		fmt.Sprintf("Embarque programado para %s", cmd.Date().Format("2006-01-02")),
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
