// Package auditrepo persists audit trail entries. Entries are append-only and
// written in the same transaction as the mutation they record.
package auditrepo

import (
	"time"

	"shipping/internal/core/domain/model/audit"

	"github.com/google/uuid"
)

// EntryDTO represents the database structure for audit trail entries.
type EntryDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	ActorID  uuid.UUID `gorm:"type:uuid;index"`
	Action   string
	Entity   string
	EntityID uuid.UUID `gorm:"type:uuid;index"`
	Details  string
	At       time.Time `gorm:"index"`
}

// TableName specifies the database table name for audit entries.
func (EntryDTO) TableName() string {
	return "audit_log"
}

// fromDomain converts an audit entry to its database representation.
func fromDomain(entry *audit.Entry) EntryDTO {
	return EntryDTO{
		ID:       entry.ID().Bytes(),
		ActorID:  entry.ActorID().Bytes(),
		Action:   entry.Action(),
		Entity:   entry.Entity(),
		EntityID: entry.EntityID().Bytes(),
		Details:  entry.Details(),
		At:       entry.At(),
	}
}
