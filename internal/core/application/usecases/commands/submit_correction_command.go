package commands

import (
	"errors"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/pkg/guard"
)

var ErrSubmitCorrectionCommandIsNotConstructed = errors.New(
	"SubmitCorrectionCommand must be created via NewSubmitCorrectionCommand constructor",
)

// SubmitCorrectionCommand proposes new dimensions for a piece of an order
// whose reweigh is already finalized. Direct reweighs are closed at that
// point; changes go through an approval workflow instead.
type SubmitCorrectionCommand struct { //nolint:recvcheck //using for validation
	pieceID  kernel.UUID
	proposed kernel.Dimensions
	actorID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewSubmitCorrectionCommand creates a correction submission.
func NewSubmitCorrectionCommand(pieceID kernel.UUID, proposed kernel.Dimensions, actorID kernel.UUID) (SubmitCorrectionCommand, error) {
	cmd := SubmitCorrectionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPieceID(pieceID),
		cmd.setProposed(proposed),
		cmd.setActorID(actorID),
	); err != nil {
		return SubmitCorrectionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitCorrectionCommand) Validate() error {
	return c.guard.Validate(ErrSubmitCorrectionCommandIsNotConstructed)
}

// PieceID returns the piece the correction targets.
func (c SubmitCorrectionCommand) PieceID() kernel.UUID {
	return c.pieceID
}

// Proposed returns the proposed dimensions.
func (c SubmitCorrectionCommand) Proposed() kernel.Dimensions {
	return c.proposed
}

// ActorID returns who requested the correction.
func (c SubmitCorrectionCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *SubmitCorrectionCommand) setPieceID(pieceID kernel.UUID) error {
	if err := pieceID.Validate(); err != nil {
		return err
	}

	c.pieceID = pieceID
	return nil
}

func (c *SubmitCorrectionCommand) setProposed(proposed kernel.Dimensions) error {
	if err := proposed.Validate(); err != nil {
		return err
	}

	c.proposed = proposed
	return nil
}

func (c *SubmitCorrectionCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
