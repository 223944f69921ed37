package commands_test

import (
	"context"
	"time"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/audit"
	"shipping/internal/core/domain/model/departure"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/product"
	"shipping/internal/core/domain/services"
	"shipping/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

// Mock implementations shared by the command handler tests.

type MockDepartureRepository struct {
	mock.Mock
}

func (m *MockDepartureRepository) Add(ctx context.Context, aggregate *departure.Departure) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockDepartureRepository) Update(ctx context.Context, aggregate *departure.Departure) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockDepartureRepository) Get(ctx context.Context, id kernel.UUID) (*departure.Departure, error) {
	args := m.Called(ctx, id)
	if d, ok := args.Get(0).(*departure.Departure); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDepartureRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*departure.Departure, error) {
	args := m.Called(ctx, id)
	if d, ok := args.Get(0).(*departure.Departure); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDepartureRepository) DeactivateAllBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Add(ctx context.Context, aggregate *product.Product) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, aggregate *product.Product) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*product.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) UsageForDeparture(
	ctx context.Context, departureID kernel.UUID, excludeProductID *kernel.UUID,
) (services.Load, error) {
	args := m.Called(ctx, departureID, excludeProductID)
	return args.Get(0).(services.Load), args.Error(1)
}

func (m *MockProductRepository) UsageByProductType(
	ctx context.Context, departureID kernel.UUID,
) ([]ports.TypeUsage, error) {
	args := m.Called(ctx, departureID)
	return args.Get(0).([]ports.TypeUsage), args.Error(1)
}

type MockAuditLogRepository struct {
	mock.Mock
}

func (m *MockAuditLogRepository) Add(ctx context.Context, entry *audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockUoW struct {
	mock.Mock
}

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) DepartureRepository() ports.DepartureRepository {
	args := m.Called()
	return args.Get(0).(ports.DepartureRepository)
}

func (m *MockUoW) ProductRepository() ports.ProductRepository {
	args := m.Called()
	return args.Get(0).(ports.ProductRepository)
}

func (m *MockUoW) AuditLogRepository() ports.AuditLogRepository {
	args := m.Called()
	return args.Get(0).(ports.AuditLogRepository)
}

type MockUoWFactory struct {
	mock.Mock
}

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockDepartureUoWFactory struct {
	mock.Mock
}

func (m *MockDepartureUoWFactory) Create() commands.DepartureUoW {
	args := m.Called()
	return args.Get(0).(commands.DepartureUoW)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishAssignment(ctx context.Context, event ports.AssignmentEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
