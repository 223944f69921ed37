package commands

import (
	"context"
	"fmt"
	"time"

	"shipping/internal/core/domain/model/audit"
	"shipping/internal/core/ports"
)

// RemoveProductCommandHandler handles product deletion. No admission check is
// needed: capacity only ever shrinks.
type RemoveProductCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

// NewRemoveProductCommandHandler creates a handler for product deletion.
func NewRemoveProductCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) RemoveProductCommandHandler {
	return RemoveProductCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the product removal command.
// Returns errs.ErrObjectNotFound when the product does not exist.
func (h *RemoveProductCommandHandler) Handle(ctx context.Context, cmd RemoveProductCommand) error {
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

	if err = productRepo.Delete(ctx, productEntity.ID()); err != nil {
		return err
	}

	entry, err := audit.NewEntry(
		cmd.ActorID(), "ELIMINAR", "producto", productEntity.ID(),
		fmt.Sprintf("Producto %q eliminado", productEntity.Description()),
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

	publishAssignment(ctx, h.publisher, productEntity, ports.AssignmentActionRemoved)
	return nil
}
