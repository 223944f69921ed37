package commands

import (
	"context"
	"log/slog"

	"shipping/internal/core/domain/model/product"
	"shipping/internal/core/ports"
)

// publishAssignment emits a best-effort event for a committed mutation that
// affected a departure's load. Publish failures are logged and never surfaced:
// the mutation is already committed. Unassigned products emit nothing.
func publishAssignment(ctx context.Context, publisher ports.EventPublisher, p *product.Product, action string) {
	if publisher == nil || p.DepartureID() == nil {
		return
	}

	event := ports.AssignmentEvent{
		ProductID:   p.ID().String(),
		DepartureID: p.DepartureID().String(),
		Action:      action,
		Weight:      p.CapacityWeight(),
		Volume:      p.CapacityVolume(),
	}
	if err := publisher.PublishAssignment(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to publish assignment event",
			"productID", event.ProductID, "departureID", event.DepartureID, "error", err)
	}
}
