package commands

import (
	"errors"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/pkg/guard"
)

var ErrDecideCorrectionCommandIsNotConstructed = errors.New(
	"DecideCorrectionCommand must be created via NewDecideCorrectionCommand constructor",
)

// DecideCorrectionCommand approves or rejects a pending correction request.
type DecideCorrectionCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	approve   bool
	actorID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewDecideCorrectionCommand creates a decision command.
func NewDecideCorrectionCommand(requestID kernel.UUID, approve bool, actorID kernel.UUID) (DecideCorrectionCommand, error) {
	cmd := DecideCorrectionCommand{
		approve: approve,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRequestID(requestID),
		cmd.setActorID(actorID),
	); err != nil {
		return DecideCorrectionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DecideCorrectionCommand) Validate() error {
	return c.guard.Validate(ErrDecideCorrectionCommandIsNotConstructed)
}

// RequestID returns the correction request being decided.
func (c DecideCorrectionCommand) RequestID() kernel.UUID {
	return c.requestID
}

// Approve reports whether the request is approved; false rejects it.
func (c DecideCorrectionCommand) Approve() bool {
	return c.approve
}

// ActorID returns the supervisor making the decision.
func (c DecideCorrectionCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *DecideCorrectionCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}

	c.requestID = requestID
	return nil
}

func (c *DecideCorrectionCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
