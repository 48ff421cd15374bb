package commands

import (
	"errors"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/pkg/guard"
)

var ErrEditTransitCommandIsNotConstructed = errors.New(
	"EditTransitCommand must be created via NewEditTransitCommand constructor",
)

// EditTransitCommand replaces the order list of an open transit document.
type EditTransitCommand struct { //nolint:recvcheck //using for validation
	documentID    kernel.UUID
	trackingCodes []string
	actorID       kernel.UUID

	guard guard.ConstructorGuard
}

// NewEditTransitCommand creates an edit command with the full new tracking
// code list; the handler diffs it against the stored list.
func NewEditTransitCommand(documentID kernel.UUID, trackingCodes []string, actorID kernel.UUID) (EditTransitCommand, error) {
	cmd := EditTransitCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDocumentID(documentID),
		cmd.setTrackingCodes(trackingCodes),
		cmd.setActorID(actorID),
	); err != nil {
		return EditTransitCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c EditTransitCommand) Validate() error {
	return c.guard.Validate(ErrEditTransitCommandIsNotConstructed)
}

// DocumentID returns the document being edited.
func (c EditTransitCommand) DocumentID() kernel.UUID {
	return c.documentID
}

// TrackingCodes returns the new full order list.
func (c EditTransitCommand) TrackingCodes() []string {
	return c.trackingCodes
}

// ActorID returns the dispatcher editing the document.
func (c EditTransitCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *EditTransitCommand) setDocumentID(documentID kernel.UUID) error {
	if err := documentID.Validate(); err != nil {
		return err
	}

	c.documentID = documentID
	return nil
}

func (c *EditTransitCommand) setTrackingCodes(trackingCodes []string) error {
	if len(trackingCodes) == 0 {
		return ErrTrackingCodesAreRequired
	}

	c.trackingCodes = trackingCodes
	return nil
}

func (c *EditTransitCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
