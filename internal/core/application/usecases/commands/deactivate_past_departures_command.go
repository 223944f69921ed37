package commands

import (
	"errors"
	"time"

	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrDeactivatePastDeparturesCommandIsNotConstructed = errors.New(
	"DeactivatePastDeparturesCommand must be created via NewDeactivatePastDeparturesCommand constructor",
)

// DeactivatePastDeparturesCommand triggers the bulk deactivation of every
// active departure whose date lies strictly before the cutoff. Issued by the
// scheduled cleanup job.
type DeactivatePastDeparturesCommand struct { //nolint:recvcheck //using for validation
	cutoff time.Time

	guard guard.ConstructorGuard
}

// NewDeactivatePastDeparturesCommand creates the bulk deactivation command.
func NewDeactivatePastDeparturesCommand(cutoff time.Time) (DeactivatePastDeparturesCommand, error) {
	command := DeactivatePastDeparturesCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setCutoff(cutoff); err != nil {
		return DeactivatePastDeparturesCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrDeactivatePastDeparturesCommandIsNotConstructed if validation fails.
func (c DeactivatePastDeparturesCommand) Validate() error {
	return c.guard.Validate(ErrDeactivatePastDeparturesCommandIsNotConstructed)
}

// Cutoff returns the date before which departures are deactivated.
func (c DeactivatePastDeparturesCommand) Cutoff() time.Time {
	return c.cutoff
}

func (c *DeactivatePastDeparturesCommand) setCutoff(cutoff time.Time) error {
	if cutoff.IsZero() {
		return errs.NewValueIsRequiredError("cutoff")
	}

	c.cutoff = cutoff
	return nil
}
