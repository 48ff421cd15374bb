package commands

import (
	"errors"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/pkg/guard"
)

var (
	ErrInboundScanCommandIsNotConstructed = errors.New(
		"InboundScanCommand must be created via NewInboundScanCommand constructor",
	)
	ErrPieceIDsAreRequired = errors.New("at least one piece id is required")
)

// InboundScanCommand records piece-level reception at a hub, usually while
// unloading a transit vehicle.
type InboundScanCommand struct { //nolint:recvcheck //using for validation
	hubID    kernel.UUID
	pieceIDs []kernel.UUID
	actorID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewInboundScanCommand creates a scan command for the given pieces.
func NewInboundScanCommand(hubID kernel.UUID, pieceIDs []kernel.UUID, actorID kernel.UUID) (InboundScanCommand, error) {
	cmd := InboundScanCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setHubID(hubID),
		cmd.setPieceIDs(pieceIDs),
		cmd.setActorID(actorID),
	); err != nil {
		return InboundScanCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c InboundScanCommand) Validate() error {
	return c.guard.Validate(ErrInboundScanCommandIsNotConstructed)
}

// HubID returns the hub receiving the pieces.
func (c InboundScanCommand) HubID() kernel.UUID {
	return c.hubID
}

// PieceIDs returns the scanned pieces in scan order.
func (c InboundScanCommand) PieceIDs() []kernel.UUID {
	return c.pieceIDs
}

// ActorID returns the hub operator scanning.
func (c InboundScanCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *InboundScanCommand) setHubID(hubID kernel.UUID) error {
	if err := hubID.Validate(); err != nil {
		return err
	}

	c.hubID = hubID
	return nil
}

func (c *InboundScanCommand) setPieceIDs(pieceIDs []kernel.UUID) error {
	if len(pieceIDs) == 0 {
		return ErrPieceIDsAreRequired
	}
	for _, id := range pieceIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.pieceIDs = pieceIDs
	return nil
}

func (c *InboundScanCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
