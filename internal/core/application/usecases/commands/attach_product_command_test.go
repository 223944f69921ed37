package commands_test

import (
	"testing"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAttachProductCommand(t *testing.T) {
	actor := kernel.NewUUID()
	shipment := kernel.NewUUID()

	t.Run("creates a valid unassigned command", func(t *testing.T) {
		cmd, err := commands.NewAttachProductCommand(actor, shipment, "Cemento", "Carga General", f(10), f(2), nil)

		require.NoError(t, err)
		assert.NoError(t, cmd.Validate())
		assert.NoError(t, cmd.ProductID().Validate())
		assert.Nil(t, cmd.DepartureID())
	})

	t.Run("allows nil measurements", func(t *testing.T) {
		cmd, err := commands.NewAttachProductCommand(actor, shipment, "Cemento", "Carga General", nil, nil, nil)

		require.NoError(t, err)
		assert.Nil(t, cmd.Weight())
		assert.Nil(t, cmd.Volume())
	})

	t.Run("requires an actor", func(t *testing.T) {
		_, err := commands.NewAttachProductCommand(kernel.UUID{}, shipment, "", "Carga General", nil, nil, nil)

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("requires a product type", func(t *testing.T) {
		_, err := commands.NewAttachProductCommand(actor, shipment, "Cemento", "", nil, nil, nil)

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects negative measurements", func(t *testing.T) {
		_, err := commands.NewAttachProductCommand(actor, shipment, "Cemento", "Carga General", f(-1), nil, nil)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value command fails validation", func(t *testing.T) {
		var cmd commands.AttachProductCommand

		assert.ErrorIs(t, cmd.Validate(), commands.ErrAttachProductCommandIsNotConstructed)
	})
}
