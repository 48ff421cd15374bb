package commands

import (
	"errors"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/pkg/guard"
)

var (
	ErrBypassReceiveCommandIsNotConstructed = errors.New(
		"BypassReceiveCommand must be created via NewBypassReceiveCommand constructor",
	)
	ErrProofIsRequired = errors.New("proof evidence is required")
)

// BypassReceiveCommand is the operator override that receives a whole order
// at a hub without per-piece scans. It requires proof evidence.
type BypassReceiveCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	hubID   kernel.UUID
	proof   []byte
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewBypassReceiveCommand creates a bypass receive command. proof is the raw
// evidence file, typically a photo of the shipment at the dock.
func NewBypassReceiveCommand(orderID, hubID kernel.UUID, proof []byte, actorID kernel.UUID) (BypassReceiveCommand, error) {
	cmd := BypassReceiveCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setHubID(hubID),
		cmd.setProof(proof),
		cmd.setActorID(actorID),
	); err != nil {
		return BypassReceiveCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c BypassReceiveCommand) Validate() error {
	return c.guard.Validate(ErrBypassReceiveCommandIsNotConstructed)
}

// OrderID returns the order being received.
func (c BypassReceiveCommand) OrderID() kernel.UUID {
	return c.orderID
}

// HubID returns the receiving hub.
func (c BypassReceiveCommand) HubID() kernel.UUID {
	return c.hubID
}

// Proof returns the raw evidence file.
func (c BypassReceiveCommand) Proof() []byte {
	return c.proof
}

// ActorID returns the overriding operator.
func (c BypassReceiveCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *BypassReceiveCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *BypassReceiveCommand) setHubID(hubID kernel.UUID) error {
	if err := hubID.Validate(); err != nil {
		return err
	}

	c.hubID = hubID
	return nil
}

func (c *BypassReceiveCommand) setProof(proof []byte) error {
	if len(proof) == 0 {
		return ErrProofIsRequired
	}

	c.proof = proof
	return nil
}

func (c *BypassReceiveCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
