// Package audit defines the system audit trail entry recorded alongside every
// state-changing operation. Entries are persisted in the same transaction as
// the mutation they describe, so an audit row exists iff the mutation committed.
package audit

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

// ErrEntryIsNotConstructed is returned when using an improperly initialized Entry.
var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")

// Entry is a single audit trail record. ActorID identifies who performed the
// operation; it is carried explicitly on each command rather than read from
// ambient request state.
type Entry struct {
	id       kernel.UUID
	actorID  kernel.UUID
	action   string
	entity   string
	entityID kernel.UUID
	details  string
	at       time.Time
	guard    guard.ConstructorGuard
}

// NewEntry creates an audit entry timestamped with the supplied time.
func NewEntry(
	actorID kernel.UUID,
	action string,
	entity string,
	entityID kernel.UUID,
	details string,
	at time.Time,
) (*Entry, error) {
	err := errors.Join(
		validateActor(actorID),
		validateLabel("action", action),
		validateLabel("entity", entity),
	)
	if err != nil {
		return nil, err
	}

	return &Entry{
		id:       kernel.NewUUID(),
		actorID:  actorID,
		action:   action,
		entity:   entity,
		entityID: entityID,
		details:  details,
		at:       at,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// RestoreEntry reconstitutes an audit entry from storage.
func RestoreEntry(
	id kernel.UUID,
	actorID kernel.UUID,
	action string,
	entity string,
	entityID kernel.UUID,
	details string,
	at time.Time,
) *Entry {
	return &Entry{
		id:       id,
		actorID:  actorID,
		action:   action,
		entity:   entity,
		entityID: entityID,
		details:  details,
		at:       at,
		guard:    guard.NewConstructorGuard(),
	}
}

func validateActor(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actorID", err)
	}
	return nil
}

func validateLabel(name, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}

func (e *Entry) ID() kernel.UUID       { return e.id }
func (e *Entry) ActorID() kernel.UUID  { return e.actorID }
func (e *Entry) Action() string        { return e.action }
func (e *Entry) Entity() string        { return e.entity }
func (e *Entry) EntityID() kernel.UUID { return e.entityID }
func (e *Entry) Details() string       { return e.details }
func (e *Entry) At() time.Time         { return e.at }

// Validate ensures the entry was created through a constructor.
func (e *Entry) Validate() error {
	return e.guard.Validate(ErrEntryIsNotConstructed)
}
