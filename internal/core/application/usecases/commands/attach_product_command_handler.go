package commands

import (
	"context"
	"fmt"
	"time"

	"shipping/internal/core/domain/model/audit"
	"shipping/internal/core/domain/model/product"
	"shipping/internal/core/domain/services"
	"shipping/internal/core/ports"
)

// AttachProductCommandHandler handles product registration and the serialized
// admission check. When the command targets a departure the departure row is
// locked for the whole check-then-commit window, so two concurrent attaches
// against the same departure cannot both pass a check that only one of them
// fits. Attaches to different departures never contend, and unassigned
// products bypass the lock entirely.
type AttachProductCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

// NewAttachProductCommandHandler creates a handler for product registration.
// The publisher receives a best-effort event after each committed assignment.
func NewAttachProductCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) AttachProductCommandHandler {
	return AttachProductCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the product attach command.
// Rejections (capacity or product type) leave no trace: nothing is committed.
// Postgres lock contention surfaces as errs.ErrTransientContention and is safe
// to retry.
func (h *AttachProductCommandHandler) Handle(ctx context.Context, cmd AttachProductCommand) error {
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

	productEntity, err := product.NewProduct(
		cmd.ProductID(),
		cmd.ShipmentID(),
		cmd.Description(),
		cmd.ProductType(),
		cmd.Weight(),
		cmd.Volume(),
		cmd.DepartureID(),
	)
	if err != nil {
		return err
	}

	if cmd.DepartureID() != nil {
		delta := services.Load{Weight: productEntity.CapacityWeight(), Volume: productEntity.CapacityVolume()}
		_, err = admitToDeparture(
			ctx, uow.DepartureRepository(), uow.ProductRepository(),
			*cmd.DepartureID(), cmd.ProductType(), delta, nil)
		if err != nil {
			return err
		}
	}

	if err = uow.ProductRepository().Add(ctx, productEntity); err != nil {
		return err
	}

	entry, err := audit.NewEntry(
		cmd.ActorID(), "CREAR", "producto", productEntity.ID(),
		fmt.Sprintf("Producto %q registrado (tipo %s)", cmd.Description(), cmd.ProductType()),
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

	publishAssignment(ctx, h.publisher, productEntity, ports.AssignmentActionAttached)
	return nil
}
