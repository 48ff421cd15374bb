package commands

import (
	"errors"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/pkg/guard"
)

var ErrInboundConfirmCommandIsNotConstructed = errors.New(
	"InboundConfirmCommand must be created via NewInboundConfirmCommand constructor",
)

// InboundConfirmCommand closes a transit leg at a hub: the document is
// marked arrived and every piece of every order on it is received in bulk.
type InboundConfirmCommand struct { //nolint:recvcheck //using for validation
	documentID kernel.UUID
	hubID      kernel.UUID
	actorID    kernel.UUID

	guard guard.ConstructorGuard
}

// NewInboundConfirmCommand creates a confirmation command.
func NewInboundConfirmCommand(documentID, hubID, actorID kernel.UUID) (InboundConfirmCommand, error) {
	cmd := InboundConfirmCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDocumentID(documentID),
		cmd.setHubID(hubID),
		cmd.setActorID(actorID),
	); err != nil {
		return InboundConfirmCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c InboundConfirmCommand) Validate() error {
	return c.guard.Validate(ErrInboundConfirmCommandIsNotConstructed)
}

// DocumentID returns the arriving document.
func (c InboundConfirmCommand) DocumentID() kernel.UUID {
	return c.documentID
}

// HubID returns the hub confirming arrival.
func (c InboundConfirmCommand) HubID() kernel.UUID {
	return c.hubID
}

// ActorID returns the confirming operator.
func (c InboundConfirmCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *InboundConfirmCommand) setDocumentID(documentID kernel.UUID) error {
	if err := documentID.Validate(); err != nil {
		return err
	}

	c.documentID = documentID
	return nil
}

func (c *InboundConfirmCommand) setHubID(hubID kernel.UUID) error {
	if err := hubID.Validate(); err != nil {
		return err
	}

	c.hubID = hubID
	return nil
}

func (c *InboundConfirmCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
