package commands_test

import (
	"testing"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/product"
	"shipping/internal/core/domain/services"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func storedProduct(t *testing.T, departureID *kernel.UUID, weight, volume *float64) *product.Product {
	t.Helper()

	p, err := product.RestoreProduct(
		kernel.NewUUID(), kernel.NewUUID(), "Cemento", "Carga General",
		weight, volume, departureID, product.Requested)
	require.NoError(t, err)
	return p
}

func TestUpdateProductCommandHandler_Handle_ExcludesOwnContribution(t *testing.T) {
	ctx := t.Context()
	dep := testDeparture(t, 100, 100)
	depID := dep.ID()
	existing := storedProduct(t, &depID, f(95), nil)

	// Growing from 95 to 98 only fits because the product's previous 95 is
	// excluded from the usage read.
	cmd, err := commands.NewUpdateProductCommand(
		kernel.NewUUID(), existing.ID(), "Cemento", "Carga General", f(98), nil, &depID)
	require.NoError(t, err)

	var capturedExclude *kernel.UUID
	mockDepartures := new(MockDepartureRepository)
	mockProducts := new(MockProductRepository)
	mockAudit := new(MockAuditLogRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockUoWFactory)
	mockPublisher := new(MockEventPublisher)

	mockFactory.On("Create").Return(mockUoW).Once()
	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("ProductRepository").Return(mockProducts).Once()
	mockUoW.On("DepartureRepository").Return(mockDepartures).Once()
	mockProducts.On("Get", ctx, existing.ID()).Return(existing, nil).Once()
	mockDepartures.On("GetForUpdate", ctx, depID).Return(dep, nil).Once()
	mockProducts.On("UsageForDeparture", ctx, depID, mock.MatchedBy(func(id *kernel.UUID) bool {
		capturedExclude = id
		return id != nil
	})).Return(services.Load{Weight: 0, Volume: 0}, nil).Once()
	mockProducts.On("Update", ctx, existing).Return(nil).Once()
	mockUoW.On("AuditLogRepository").Return(mockAudit).Once()
	mockAudit.On("Add", ctx, mock.Anything).Return(nil).Once()
	mockUoW.On("Commit", ctx).Return(nil).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()
	mockPublisher.On("PublishAssignment", ctx, mock.AnythingOfType("ports.AssignmentEvent")).Return(nil).Once()

	handler := commands.NewUpdateProductCommandHandler(mockFactory, mockPublisher)

	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, capturedExclude)
	assert.True(t, capturedExclude.IsEqual(existing.ID()))
	require.NotNil(t, existing.Weight())
	assert.InDelta(t, 98, *existing.Weight(), 0.0001)
	mockUoW.AssertExpectations(t)
}

func TestUpdateProductCommandHandler_Handle_UnassignSkipsAdmission(t *testing.T) {
	ctx := t.Context()
	depID := kernel.NewUUID()
	existing := storedProduct(t, &depID, f(10), f(2))

	cmd, err := commands.NewUpdateProductCommand(
		kernel.NewUUID(), existing.ID(), "Cemento", "Carga General", f(10), f(2), nil)
	require.NoError(t, err)

	mockProducts := new(MockProductRepository)
	mockAudit := new(MockAuditLogRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockUoWFactory)
	mockPublisher := new(MockEventPublisher)

	mockFactory.On("Create").Return(mockUoW).Once()
	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("ProductRepository").Return(mockProducts).Once()
	mockProducts.On("Get", ctx, existing.ID()).Return(existing, nil).Once()
	mockProducts.On("Update", ctx, existing).Return(nil).Once()
	mockUoW.On("AuditLogRepository").Return(mockAudit).Once()
	mockAudit.On("Add", ctx, mock.Anything).Return(nil).Once()
	mockUoW.On("Commit", ctx).Return(nil).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewUpdateProductCommandHandler(mockFactory, mockPublisher)

	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Nil(t, existing.DepartureID())
	// Unassigned after the edit, so no event is published.
	mockPublisher.AssertNotCalled(t, "PublishAssignment", mock.Anything, mock.Anything)
	mockUoW.AssertExpectations(t)
}

func TestUpdateProductCommandHandler_Handle_RejectionLeavesNoTrace(t *testing.T) {
	ctx := t.Context()
	dep := testDeparture(t, 100, 100)
	depID := dep.ID()
	existing := storedProduct(t, nil, f(10), nil)

	cmd, err := commands.NewUpdateProductCommand(
		kernel.NewUUID(), existing.ID(), "Cemento", "Carga General", f(50), nil, &depID)
	require.NoError(t, err)

	mockDepartures := new(MockDepartureRepository)
	mockProducts := new(MockProductRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockUoWFactory)

	mockFactory.On("Create").Return(mockUoW).Once()
	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("ProductRepository").Return(mockProducts).Once()
	mockUoW.On("DepartureRepository").Return(mockDepartures).Once()
	mockProducts.On("Get", ctx, existing.ID()).Return(existing, nil).Once()
	mockDepartures.On("GetForUpdate", ctx, depID).Return(dep, nil).Once()
	mockProducts.On("UsageForDeparture", ctx, depID, mock.Anything).
		Return(services.Load{Weight: 60, Volume: 0}, nil).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewUpdateProductCommandHandler(mockFactory, nil)

	err = handler.Handle(ctx, cmd)

	var rejection *services.RejectionError
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, services.ReasonCapacityExceeded, rejection.Decision.Reason)
	mockProducts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	mockUoW.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestUpdateProductCommandHandler_Handle_ProductNotFound(t *testing.T) {
	ctx := t.Context()
	productID := kernel.NewUUID()

	cmd, err := commands.NewUpdateProductCommand(
		kernel.NewUUID(), productID, "Cemento", "Carga General", nil, nil, nil)
	require.NoError(t, err)

	mockProducts := new(MockProductRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockUoWFactory)

	mockFactory.On("Create").Return(mockUoW).Once()
	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("ProductRepository").Return(mockProducts).Once()
	mockProducts.On("Get", ctx, productID).
		Return(nil, errs.NewObjectNotFoundError("productID", productID)).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewUpdateProductCommandHandler(mockFactory, nil)

	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	mockUoW.AssertNotCalled(t, "Commit", mock.Anything)
}
