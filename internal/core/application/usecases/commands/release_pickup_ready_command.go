package commands

import (
	"errors"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/pkg/errs"
	"cargo/internal/pkg/guard"
)

var ErrReleasePickupReadyCommandIsNotConstructed = errors.New(
	"ReleasePickupReadyCommand must be created via NewReleasePickupReadyCommand constructor",
)

// ReleasePickupReadyCommand triggers the deferred Draft promotion: every
// Draft order whose persisted pickup-ready time has passed is moved to
// ReadyForPickup. The scheduler fires it; the actor id identifies the
// system user in the audit trail.
type ReleasePickupReadyCommand struct {
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewReleasePickupReadyCommand creates a command to promote due orders.
func NewReleasePickupReadyCommand(actorID kernel.UUID) (ReleasePickupReadyCommand, error) {
	if err := actorID.Validate(); err != nil {
		return ReleasePickupReadyCommand{}, errs.NewValueIsRequiredErrorWithCause("actorID", err)
	}

	return ReleasePickupReadyCommand{
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// ActorID returns the system user recorded on promotion history rows.
func (c ReleasePickupReadyCommand) ActorID() kernel.UUID { return c.actorID }

// Validate ensures the command was created through the constructor.
func (c ReleasePickupReadyCommand) Validate() error {
	return c.guard.Validate(ErrReleasePickupReadyCommandIsNotConstructed)
}
