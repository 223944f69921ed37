package commands

import (
	"context"
)

// DeactivatePastDeparturesCommandHandler handles the bulk deactivation of
// departures whose date has passed. Run periodically by the cleanup job.
type DeactivatePastDeparturesCommandHandler struct {
	uowFactory DepartureUoWFactory
}

// NewDeactivatePastDeparturesCommandHandler creates a handler for the bulk deactivation.
func NewDeactivatePastDeparturesCommandHandler(uowFactory DepartureUoWFactory) DeactivatePastDeparturesCommandHandler {
	return DeactivatePastDeparturesCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the bulk deactivation command and returns the number of
// departures deactivated. An empty result is not an error.
func (h *DeactivatePastDeparturesCommandHandler) Handle(
	ctx context.Context, cmd DeactivatePastDeparturesCommand,
) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deactivated, err := uow.DepartureRepository().DeactivateAllBefore(ctx, cmd.Cutoff())
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return deactivated, nil
}
