package commands

import (
	"context"
	"fmt"
	"time"

	"shipping/internal/core/domain/model/audit"
	"shipping/internal/core/domain/services"
	"shipping/internal/core/ports"
)

// UpdateProductCommandHandler handles product edits, including reassignment
// between departures and unassignment. Whenever the new state targets a
// departure, the admission check runs under that departure's row lock with the
// product's own previous contribution excluded from the usage read.
type UpdateProductCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

// NewUpdateProductCommandHandler creates a handler for product edits.
func NewUpdateProductCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) UpdateProductCommandHandler {
	return UpdateProductCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the product update command.
// Returns errs.ErrObjectNotFound when the product does not exist, a
// RejectionError when the new state does not fit the target departure, and
// errs.ErrTransientContention on lock contention. No mutation is committed in
// any of those cases.
func (h *UpdateProductCommandHandler) Handle(ctx context.Context, cmd UpdateProductCommand) error {
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

	productRepo := uow.ProductRepository()
	productEntity, err := productRepo.Get(ctx, cmd.ProductID())
	if err != nil {
		return err
	}

	if cmd.DepartureID() != nil {
		// The product's own row is excluded from the usage read, so an edit
		// is admitted against the quota left by everything else. On a
		// reassignment the exclusion is harmless: the product contributes
		// nothing to the new departure yet.
		delta := services.Load{}
		if cmd.Weight() != nil {
			delta.Weight = *cmd.Weight()
		}
		if cmd.Volume() != nil {
			delta.Volume = *cmd.Volume()
		}

		excludeID := cmd.ProductID()
		_, err = admitToDeparture(
			ctx, uow.DepartureRepository(), productRepo,
			*cmd.DepartureID(), cmd.ProductType(), delta, &excludeID)
		if err != nil {
			return err
		}
	}

	productEntity.SetDescription(cmd.Description())
	if err = productEntity.ChangeProductType(cmd.ProductType()); err != nil {
		return err
	}
	if err = productEntity.SetMeasurements(cmd.Weight(), cmd.Volume()); err != nil {
		return err
	}
	if cmd.DepartureID() != nil {
		if err = productEntity.AssignToDeparture(*cmd.DepartureID()); err != nil {
			return err
		}
	} else {
		productEntity.Unassign()
	}

	if err = productRepo.Update(ctx, productEntity); err != nil {
		return err
	}

	entry, err := audit.NewEntry(
		cmd.ActorID(), "ACTUALIZAR", "producto", productEntity.ID(),
		fmt.Sprintf("Producto %q actualizado", cmd.Description()),
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

	publishAssignment(ctx, h.publisher, productEntity, ports.AssignmentActionUpdated)
	return nil
}
