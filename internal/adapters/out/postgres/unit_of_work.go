// Package postgres provides the GORM-based implementation of the Unit of Work
// pattern. The Unit of Work maintains a list of objects affected by a business
// transaction and coordinates writing out changes.
//
// Key features:
//   - Transaction management across the departure, product and audit repositories
//   - Aggregate tracking for post-commit processing
//   - A per-transaction lock_timeout so admission-window lock waits fail fast
//     instead of queueing; the timeout surfaces as errs.ErrTransientContention
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.ProductRepository().Add(ctx, product); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency considerations:
//   - Each UnitOfWork instance provides an isolated transaction
//   - Multiple goroutines must use separate UnitOfWork instances
//   - The departure row lock taken by GetForUpdate is held until Commit or
//     Rollback; keep the admission window short
package postgres

import (
	"context"

	"shipping/internal/adapters/out/postgres/auditrepo"
	"shipping/internal/adapters/out/postgres/departurerepo"
	"shipping/internal/adapters/out/postgres/pgerr"
	"shipping/internal/adapters/out/postgres/productrepo"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/ports"

	"gorm.io/gorm"
)

// defaultLockTimeout bounds how long a transaction waits for the departure
// row lock before failing with SQLSTATE 55P03.
const defaultLockTimeout = "3s"

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate interface{} // Will be changed to a common Aggregate interface in the future
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database
// connections. Each business operation gets a fresh unit of work with proper
// isolation from other concurrent operations.
type GormUnitOfWorkFactory struct {
	db          *gorm.DB
	lockTimeout string
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, lockTimeout: defaultLockTimeout}
}

// WithLockTimeout overrides the per-transaction lock_timeout. Useful in tests
// that provoke contention deliberately.
func (f *GormUnitOfWorkFactory) WithLockTimeout(timeout string) *GormUnitOfWorkFactory {
	f.lockTimeout = timeout
	return f
}

// Create produces a new UnitOfWork instance ready for business transaction
// management. Each instance maintains its own transaction state and aggregate
// tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		lockTimeout:       f.lockTimeout,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates database transactions and tracks aggregate
// changes for business operations. Repositories obtained from it are bound to
// the active transaction, so the departure row lock taken during an admission
// check covers every subsequent read and write until Commit or Rollback.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	lockTimeout       string
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction and applies the lock_timeout.
// Multiple calls on the same instance are safe and will not create nested
// transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	// SET LOCAL scopes the timeout to this transaction only.
	if err := tx.Exec("SET LOCAL lock_timeout = '" + uow.lockTimeout + "'").Error; err != nil {
		_ = tx.Rollback().Error
		return err
	}

	uow.tx = tx
	return nil
}

// Commit finalizes all changes made within the current transaction.
// Returns error if no active transaction exists or if the commit fails;
// transient PostgreSQL failures are classified as errs.ErrTransientContention.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return pgerr.Wrap("commit", err)
}

// Rollback discards all changes made within the current transaction.
// Returns error if no active transaction exists or if the rollback fails.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// DepartureRepository provides departure persistence operations within the
// unit of work. Operations execute within the current transaction if one is
// active, otherwise directly on the main connection.
func (uow *GormUnitOfWork) DepartureRepository() ports.DepartureRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return departurerepo.NewGormDepartureRepository(db, uow)
}

// ProductRepository provides product persistence operations within the unit
// of work, including the quota ledger reads.
func (uow *GormUnitOfWork) ProductRepository() ports.ProductRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return productrepo.NewGormProductRepository(db, uow)
}

// AuditLogRepository provides audit trail persistence within the unit of work,
// so an audit row commits iff the mutation it describes commits.
func (uow *GormUnitOfWork) AuditLogRepository() ports.AuditLogRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return auditrepo.NewGormAuditLogRepository(db)
}

// TrackAggregate registers a domain aggregate as modified within this unit of
// work. Called by repository implementations when aggregates are added or
// updated.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}
