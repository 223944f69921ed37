// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"shipping/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// DepartureRepoFactory provides access to the departure repository within a transaction.
	DepartureRepoFactory interface {
		DepartureRepository() ports.DepartureRepository
	}

	// ProductRepoFactory provides access to the product repository within a transaction.
	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	// AuditRepoFactory provides access to the audit log repository within a transaction.
	AuditRepoFactory interface {
		AuditLogRepository() ports.AuditLogRepository
	}

	// DepartureUoW manages transactions for departure registry operations.
	DepartureUoW interface {
		TxManager
		DepartureRepoFactory
		AuditRepoFactory
	}

	// DepartureUoWFactory creates new departure unit of work instances.
	DepartureUoWFactory interface {
		Create() DepartureUoW
	}

	// UoW manages transactions spanning products, departures and the audit log.
	// Assignment operations need all three: the departure row is locked, the
	// product usage is recomputed, and the audit row is written atomically.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   departureRepo := uow.DepartureRepository()
	//   productRepo := uow.ProductRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		DepartureRepoFactory
		ProductRepoFactory
		AuditRepoFactory
	}

	// UoWFactory creates new unit of work instances for assignment operations.
	UoWFactory interface {
		Create() UoW
	}
)
