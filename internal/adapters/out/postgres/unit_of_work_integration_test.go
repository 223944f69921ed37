package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	postgres_adapter "shipping/internal/adapters/out/postgres"
	"shipping/internal/adapters/out/postgres/auditrepo"
	"shipping/internal/adapters/out/postgres/departurerepo"
	"shipping/internal/adapters/out/postgres/productrepo"
	"shipping/internal/core/domain/model/audit"
	"shipping/internal/core/domain/model/departure"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/product"
	"shipping/internal/core/domain/services"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based Unit of Work implementation with a real PostgreSQL database,
// including the serialized admission window.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes the PostgreSQL container and database connection and
// migrates the schema.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&departurerepo.DepartureDTO{}, &productrepo.ProductDTO{}, &auditrepo.EntryDTO{})
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE products, departures, audit_log").Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up the PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) newDeparture(capacityWeight, capacityVolume float64) *departure.Departure {
	types, err := departure.ParseProductTypeSet("Carga General, Refrigerado")
	suite.Require().NoError(err)

	dep, err := departure.NewDeparture(
		kernel.NewUUID(),
		time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		kernel.NewUUID(),
		nil, nil,
		types,
		capacityWeight, capacityVolume,
	)
	suite.Require().NoError(err)
	return dep
}

func (suite *UnitOfWorkIntegrationTestSuite) newProduct(departureID *kernel.UUID, weight, volume float64) *product.Product {
	p, err := product.NewProduct(
		kernel.NewUUID(), kernel.NewUUID(), "Cemento", "Carga General", &weight, &volume, departureID)
	suite.Require().NoError(err)
	return p
}

// TestUnitOfWorkFactory_Create verifies factory creates isolated instances
// providing all three repositories.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.DepartureRepository())
	suite.NotNil(uow1.ProductRepository())
	suite.NotNil(uow1.AuditLogRepository())
	suite.NotNil(uow2.DepartureRepository())
}

// TestUnitOfWork_TransactionLifecycle verifies begin, commit and rollback.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)
}

// TestUnitOfWork_TransactionErrors verifies commit/rollback without begin fail.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().Error(uow.Commit(ctx))
	suite.Require().Error(uow.Rollback(ctx))
}

// TestUnitOfWork_AssignmentWorkflow runs a full admission window: lock the
// departure, read usage, evaluate, insert the product and the audit row.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_AssignmentWorkflow() {
	ctx := context.Background()
	dep := suite.newDeparture(100, 100)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.DepartureRepository().Add(ctx, dep))
	suite.Require().NoError(uow.Commit(ctx))

	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	locked, err := uow.DepartureRepository().GetForUpdate(ctx, dep.ID())
	suite.Require().NoError(err)

	usage, err := uow.ProductRepository().UsageForDeparture(ctx, locked.ID(), nil)
	suite.Require().NoError(err)
	suite.InDelta(0, usage.Weight, 0.0001)

	depID := dep.ID()
	p := suite.newProduct(&depID, 40, 10)
	decision := services.NewAdmissionEvaluator().Evaluate(
		services.Load{Weight: locked.CapacityWeight(), Volume: locked.CapacityVolume()},
		usage,
		services.Load{Weight: p.CapacityWeight(), Volume: p.CapacityVolume()},
	)
	suite.Require().True(decision.Accepted)
	suite.Require().NoError(uow.ProductRepository().Add(ctx, p))

	entry, err := audit.NewEntry(kernel.NewUUID(), "CREAR", "producto", p.ID(), "Producto registrado", time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.AuditLogRepository().Add(ctx, entry))

	suite.Require().NoError(uow.Commit(ctx))

	// Both rows are visible after commit.
	var productCount, auditCount int64
	suite.Require().NoError(suite.db.Model(&productrepo.ProductDTO{}).Count(&productCount).Error)
	suite.Require().NoError(suite.db.Model(&auditrepo.EntryDTO{}).Count(&auditCount).Error)
	suite.Equal(int64(1), productCount)
	suite.Equal(int64(1), auditCount)
}

// TestUnitOfWork_RollbackDiscardsProductAndAudit verifies nothing leaks out of
// an aborted admission window.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsProductAndAudit() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	p := suite.newProduct(nil, 10, 2)
	suite.Require().NoError(uow.ProductRepository().Add(ctx, p))

	entry, err := audit.NewEntry(kernel.NewUUID(), "CREAR", "producto", p.ID(), "", time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.AuditLogRepository().Add(ctx, entry))

	suite.Require().NoError(uow.Rollback(ctx))

	var productCount, auditCount int64
	suite.Require().NoError(suite.db.Model(&productrepo.ProductDTO{}).Count(&productCount).Error)
	suite.Require().NoError(suite.db.Model(&auditrepo.EntryDTO{}).Count(&auditCount).Error)
	suite.Equal(int64(0), productCount)
	suite.Equal(int64(0), auditCount)
}

// TestUnitOfWork_ConcurrentAdmissionSerializes is the two-writer race: a
// departure with 10 units of weight headroom and two concurrent 10-unit
// attaches. The row lock serializes the windows, so exactly one commits and
// the other observes the updated usage and is rejected.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ConcurrentAdmissionSerializes() {
	ctx := context.Background()
	dep := suite.newDeparture(100, 100)
	depID := dep.ID()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.DepartureRepository().Add(ctx, dep))
	existing := suite.newProduct(&depID, 90, 0)
	suite.Require().NoError(uow.ProductRepository().Add(ctx, existing))
	suite.Require().NoError(uow.Commit(ctx))

	attach := func() error {
		w := suite.factory.Create()
		if err := w.Begin(ctx); err != nil {
			return err
		}
		defer func() {
			_ = w.Rollback(ctx)
		}()

		locked, err := w.DepartureRepository().GetForUpdate(ctx, depID)
		if err != nil {
			return err
		}

		usage, err := w.ProductRepository().UsageForDeparture(ctx, depID, nil)
		if err != nil {
			return err
		}

		p := suite.newProduct(&depID, 10, 0)
		decision := services.NewAdmissionEvaluator().Evaluate(
			services.Load{Weight: locked.CapacityWeight(), Volume: locked.CapacityVolume()},
			usage,
			services.Load{Weight: p.CapacityWeight(), Volume: p.CapacityVolume()},
		)
		if !decision.Accepted {
			return services.NewRejectionError(decision)
		}

		if err = w.ProductRepository().Add(ctx, p); err != nil {
			return err
		}
		return w.Commit(ctx)
	}

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- attach()
		}()
	}
	wg.Wait()
	close(results)

	var committed, rejected int
	for err := range results {
		switch {
		case err == nil:
			committed++
		case isRejection(err):
			rejected++
		default:
			suite.Failf("unexpected error", "%v", err)
		}
	}
	suite.Equal(1, committed, "exactly one attach should commit")
	suite.Equal(1, rejected, "the loser must be rejected, not silently admitted")

	// The committed state is within quota.
	usage, err := suite.factory.Create().ProductRepository().UsageForDeparture(ctx, depID, nil)
	suite.Require().NoError(err)
	suite.InDelta(100, usage.Weight, 0.0001)
}

// TestUnitOfWork_LockTimeoutIsTransient verifies a lock wait past the
// configured lock_timeout surfaces as ErrTransientContention.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_LockTimeoutIsTransient() {
	ctx := context.Background()
	dep := suite.newDeparture(100, 100)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.DepartureRepository().Add(ctx, dep))
	suite.Require().NoError(uow.Commit(ctx))

	holder := suite.factory.Create()
	suite.Require().NoError(holder.Begin(ctx))
	_, err := holder.DepartureRepository().GetForUpdate(ctx, dep.ID())
	suite.Require().NoError(err)
	defer func() {
		_ = holder.Rollback(ctx)
	}()

	impatient := postgres_adapter.NewGormUnitOfWorkFactory(suite.db).WithLockTimeout("100ms").Create()
	suite.Require().NoError(impatient.Begin(ctx))
	defer func() {
		_ = impatient.Rollback(ctx)
	}()

	_, err = impatient.DepartureRepository().GetForUpdate(ctx, dep.ID())
	suite.Require().ErrorIs(err, errs.ErrTransientContention)
}

func isRejection(err error) bool {
	var rejection *services.RejectionError
	return errors.As(err, &rejection)
}

// TestUnitOfWorkIntegration runs the integration test suite.
func TestUnitOfWorkIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
