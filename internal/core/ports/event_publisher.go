package ports

import "context"

// Assignment event actions.
const (
	AssignmentActionAttached = "attached"
	AssignmentActionUpdated  = "updated"
	AssignmentActionRemoved  = "removed"
)

// AssignmentEvent describes a committed product mutation that affected a
// departure's load.
type AssignmentEvent struct {
	ProductID   string  `json:"productId"`
	DepartureID string  `json:"departureId"`
	Action      string  `json:"action"`
	Weight      float64 `json:"weight"`
	Volume      float64 `json:"volume"`
}

// EventPublisher publishes assignment events after the owning transaction has
// committed. Publishing is best-effort: callers log failures and never roll
// back the committed mutation.
type EventPublisher interface {
	PublishAssignment(ctx context.Context, event AssignmentEvent) error
}
