package commands

import (
	"errors"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/pkg/guard"
)

var ErrRevertToWaitingCommandIsNotConstructed = errors.New(
	"RevertToWaitingCommand must be created via NewRevertToWaitingCommand constructor",
)

// RevertToWaitingCommand pulls an order back into the waiting pool at its
// current hub, typically after a mis-load.
type RevertToWaitingCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRevertToWaitingCommand creates a revert command.
func NewRevertToWaitingCommand(orderID, actorID kernel.UUID) (RevertToWaitingCommand, error) {
	cmd := RevertToWaitingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActorID(actorID),
	); err != nil {
		return RevertToWaitingCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RevertToWaitingCommand) Validate() error {
	return c.guard.Validate(ErrRevertToWaitingCommandIsNotConstructed)
}

// OrderID returns the order being reverted.
func (c RevertToWaitingCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the operator reverting.
func (c RevertToWaitingCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *RevertToWaitingCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RevertToWaitingCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
