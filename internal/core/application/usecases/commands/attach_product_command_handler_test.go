package commands_test

import (
	"testing"
	"time"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/audit"
	"shipping/internal/core/domain/model/departure"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/product"
	"shipping/internal/core/domain/services"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 {
	return &v
}

func testDeparture(t *testing.T, capacityWeight, capacityVolume float64) *departure.Departure {
	t.Helper()

	types, err := departure.ParseProductTypeSet("Carga General, Refrigerado")
	require.NoError(t, err)

	d, err := departure.NewDeparture(
		kernel.NewUUID(),
		time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		kernel.NewUUID(),
		nil, nil,
		types,
		capacityWeight, capacityVolume,
	)
	require.NoError(t, err)
	return d
}

func attachCommand(t *testing.T, departureID *kernel.UUID, weight, volume *float64) commands.AttachProductCommand {
	t.Helper()

	cmd, err := commands.NewAttachProductCommand(
		kernel.NewUUID(), kernel.NewUUID(), "Cemento", "Carga General", weight, volume, departureID)
	require.NoError(t, err)
	return cmd
}

func TestAttachProductCommandHandler_Handle_UnassignedProductSkipsAdmission(t *testing.T) {
	ctx := t.Context()
	cmd := attachCommand(t, nil, f(10), f(2))

	mockProducts := new(MockProductRepository)
	mockAudit := new(MockAuditLogRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockUoWFactory)
	mockPublisher := new(MockEventPublisher)

	mockFactory.On("Create").Return(mockUoW).Once()
	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("ProductRepository").Return(mockProducts).Once()
	mockProducts.On("Add", ctx, mock.AnythingOfType("*product.Product")).Return(nil).Once()
	mockUoW.On("AuditLogRepository").Return(mockAudit).Once()
	mockAudit.On("Add", ctx, mock.AnythingOfType("*audit.Entry")).Return(nil).Once()
	mockUoW.On("Commit", ctx).Return(nil).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewAttachProductCommandHandler(mockFactory, mockPublisher)

	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockProducts.AssertExpectations(t)
	mockAudit.AssertExpectations(t)
	// No departure, no event.
	mockPublisher.AssertNotCalled(t, "PublishAssignment", mock.Anything, mock.Anything)
}

func TestAttachProductCommandHandler_Handle_AdmitsWithinCapacity(t *testing.T) {
	ctx := t.Context()
	dep := testDeparture(t, 100, 100)
	depID := dep.ID()
	cmd := attachCommand(t, &depID, f(10), f(2))

	var capturedProduct *product.Product
	var capturedEntry *audit.Entry
	mockDepartures := new(MockDepartureRepository)
	mockProducts := new(MockProductRepository)
	mockAudit := new(MockAuditLogRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockUoWFactory)
	mockPublisher := new(MockEventPublisher)

	mockFactory.On("Create").Return(mockUoW).Once()
	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("DepartureRepository").Return(mockDepartures).Once()
	mockUoW.On("ProductRepository").Return(mockProducts).Twice()
	mockDepartures.On("GetForUpdate", ctx, depID).Return(dep, nil).Once()
	mockProducts.On("UsageForDeparture", ctx, depID, (*kernel.UUID)(nil)).
		Return(services.Load{Weight: 50, Volume: 40}, nil).Once()
	mockProducts.On("Add", ctx, mock.MatchedBy(func(p *product.Product) bool {
		capturedProduct = p
		return true
	})).Return(nil).Once()
	mockUoW.On("AuditLogRepository").Return(mockAudit).Once()
	mockAudit.On("Add", ctx, mock.MatchedBy(func(e *audit.Entry) bool {
		capturedEntry = e
		return true
	})).Return(nil).Once()
	mockUoW.On("Commit", ctx).Return(nil).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()
	mockPublisher.On("PublishAssignment", ctx, mock.AnythingOfType("ports.AssignmentEvent")).Return(nil).Once()

	handler := commands.NewAttachProductCommandHandler(mockFactory, mockPublisher)

	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, capturedProduct)
	assert.True(t, capturedProduct.ID().IsEqual(cmd.ProductID()))
	assert.Equal(t, "Carga General", capturedProduct.ProductType())
	require.NotNil(t, capturedProduct.DepartureID())
	assert.True(t, capturedProduct.DepartureID().IsEqual(depID))
	assert.Equal(t, product.Requested, capturedProduct.Status())

	require.NotNil(t, capturedEntry)
	assert.Equal(t, "CREAR", capturedEntry.Action())
	assert.Equal(t, "producto", capturedEntry.Entity())
	assert.True(t, capturedEntry.ActorID().IsEqual(cmd.ActorID()))

	mockPublisher.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
}

func TestAttachProductCommandHandler_Handle_RejectsOvershoot(t *testing.T) {
	ctx := t.Context()
	dep := testDeparture(t, 100, 100)
	depID := dep.ID()
	cmd := attachCommand(t, &depID, f(10), nil)

	mockDepartures := new(MockDepartureRepository)
	mockProducts := new(MockProductRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockUoWFactory)
	mockPublisher := new(MockEventPublisher)

	mockFactory.On("Create").Return(mockUoW).Once()
	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("DepartureRepository").Return(mockDepartures).Once()
	mockUoW.On("ProductRepository").Return(mockProducts).Once()
	mockDepartures.On("GetForUpdate", ctx, depID).Return(dep, nil).Once()
	mockProducts.On("UsageForDeparture", ctx, depID, (*kernel.UUID)(nil)).
		Return(services.Load{Weight: 95, Volume: 0}, nil).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewAttachProductCommandHandler(mockFactory, mockPublisher)

	err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, services.ErrCapacityRejected)

	var rejection *services.RejectionError
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, services.ReasonCapacityExceeded, rejection.Decision.Reason)
	assert.Equal(t, []services.Dimension{services.DimensionWeight}, rejection.Decision.Dimensions)
	assert.InDelta(t, 105.0, rejection.Decision.ProjectedPctWeight, 0.0001)

	mockProducts.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	mockUoW.AssertNotCalled(t, "Commit", mock.Anything)
	mockPublisher.AssertNotCalled(t, "PublishAssignment", mock.Anything, mock.Anything)
}

func TestAttachProductCommandHandler_Handle_RejectsAlreadyFull(t *testing.T) {
	ctx := t.Context()
	dep := testDeparture(t, 100, 100)
	depID := dep.ID()
	cmd := attachCommand(t, &depID, nil, nil)

	mockDepartures := new(MockDepartureRepository)
	mockProducts := new(MockProductRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockUoWFactory)
	mockPublisher := new(MockEventPublisher)

	mockFactory.On("Create").Return(mockUoW).Once()
	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("DepartureRepository").Return(mockDepartures).Once()
	mockUoW.On("ProductRepository").Return(mockProducts).Once()
	mockDepartures.On("GetForUpdate", ctx, depID).Return(dep, nil).Once()
	mockProducts.On("UsageForDeparture", ctx, depID, (*kernel.UUID)(nil)).
		Return(services.Load{Weight: 100, Volume: 0}, nil).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewAttachProductCommandHandler(mockFactory, mockPublisher)

	err := handler.Handle(ctx, cmd)

	var rejection *services.RejectionError
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, services.ReasonAlreadyFull, rejection.Decision.Reason)
	mockUoW.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestAttachProductCommandHandler_Handle_NonexistentDepartureAdmitsUnconstrained(t *testing.T) {
	ctx := t.Context()
	depID := kernel.NewUUID()
	cmd := attachCommand(t, &depID, f(99999), f(99999))

	mockDepartures := new(MockDepartureRepository)
	mockProducts := new(MockProductRepository)
	mockAudit := new(MockAuditLogRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockUoWFactory)
	mockPublisher := new(MockEventPublisher)

	mockFactory.On("Create").Return(mockUoW).Once()
	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("DepartureRepository").Return(mockDepartures).Once()
	mockUoW.On("ProductRepository").Return(mockProducts).Twice()
	mockDepartures.On("GetForUpdate", ctx, depID).
		Return(nil, errs.NewObjectNotFoundError("departureID", depID)).Once()
	mockProducts.On("Add", ctx, mock.AnythingOfType("*product.Product")).Return(nil).Once()
	mockUoW.On("AuditLogRepository").Return(mockAudit).Once()
	mockAudit.On("Add", ctx, mock.AnythingOfType("*audit.Entry")).Return(nil).Once()
	mockUoW.On("Commit", ctx).Return(nil).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()
	mockPublisher.On("PublishAssignment", ctx, mock.AnythingOfType("ports.AssignmentEvent")).Return(nil).Once()

	handler := commands.NewAttachProductCommandHandler(mockFactory, mockPublisher)

	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	mockProducts.AssertNotCalled(t, "UsageForDeparture", mock.Anything, mock.Anything, mock.Anything)
	mockUoW.AssertExpectations(t)
}

func TestAttachProductCommandHandler_Handle_RejectsUnacceptedProductType(t *testing.T) {
	ctx := t.Context()
	dep := testDeparture(t, 100, 100)
	depID := dep.ID()

	cmd, err := commands.NewAttachProductCommand(
		kernel.NewUUID(), kernel.NewUUID(), "Combustible", "Peligroso", f(1), f(1), &depID)
	require.NoError(t, err)

	mockDepartures := new(MockDepartureRepository)
	mockProducts := new(MockProductRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockUoWFactory)

	mockFactory.On("Create").Return(mockUoW).Once()
	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("DepartureRepository").Return(mockDepartures).Once()
	mockUoW.On("ProductRepository").Return(mockProducts).Once()
	mockDepartures.On("GetForUpdate", ctx, depID).Return(dep, nil).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewAttachProductCommandHandler(mockFactory, nil)

	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	mockProducts.AssertNotCalled(t, "UsageForDeparture", mock.Anything, mock.Anything, mock.Anything)
	mockUoW.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestAttachProductCommandHandler_Handle_InvalidCommand(t *testing.T) {
	ctx := t.Context()
	var invalidCmd commands.AttachProductCommand

	mockFactory := new(MockUoWFactory)
	handler := commands.NewAttachProductCommandHandler(mockFactory, nil)

	err := handler.Handle(ctx, invalidCmd)

	require.ErrorIs(t, err, commands.ErrAttachProductCommandIsNotConstructed)
	mockFactory.AssertExpectations(t)
}
