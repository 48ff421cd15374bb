package commands

import (
	"errors"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/pkg/guard"
)

var ErrReweighPieceCommandIsNotConstructed = errors.New(
	"ReweighPieceCommand must be created via NewReweighPieceCommand constructor",
)

// ReweighPieceCommand replaces a piece's declared dimensions with measured
// values. A piece can be reweighed once; later changes go through the
// correction request path.
type ReweighPieceCommand struct { //nolint:recvcheck //using for validation
	pieceID kernel.UUID
	dims    kernel.Dimensions
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewReweighPieceCommand creates a reweigh command with measured dimensions.
func NewReweighPieceCommand(pieceID kernel.UUID, dims kernel.Dimensions, actorID kernel.UUID) (ReweighPieceCommand, error) {
	cmd := ReweighPieceCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPieceID(pieceID),
		cmd.setDims(dims),
		cmd.setActorID(actorID),
	); err != nil {
		return ReweighPieceCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReweighPieceCommand) Validate() error {
	return c.guard.Validate(ErrReweighPieceCommandIsNotConstructed)
}

// PieceID returns the piece being reweighed.
func (c ReweighPieceCommand) PieceID() kernel.UUID {
	return c.pieceID
}

// Dims returns the measured dimensions.
func (c ReweighPieceCommand) Dims() kernel.Dimensions {
	return c.dims
}

// ActorID returns the warehouse operator performing the reweigh.
func (c ReweighPieceCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *ReweighPieceCommand) setPieceID(pieceID kernel.UUID) error {
	if err := pieceID.Validate(); err != nil {
		return err
	}

	c.pieceID = pieceID
	return nil
}

func (c *ReweighPieceCommand) setDims(dims kernel.Dimensions) error {
	if err := dims.Validate(); err != nil {
		return err
	}

	c.dims = dims
	return nil
}

func (c *ReweighPieceCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
