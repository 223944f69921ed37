package ports

import (
	"context"

	"shipping/internal/core/domain/model/audit"
)

// AuditLogRepository persists audit trail entries. Entries are written within
// the same transaction as the mutation they describe.
type AuditLogRepository interface {
	Add(ctx context.Context, entry *audit.Entry) error
}
