package commands

import (
	"errors"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrPiecesAreRequired = errors.New("at least one declared piece is required")
	ErrSameHub           = errors.New("source and destination hubs must differ")
)

// CreateOrderCommand represents intake of a new order with its declared
// pieces. The piece dimensions seed the initial consolidation rows.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, srcHub, dstHub, dims, operatorID)
//	if err != nil {
//	    return fmt.Errorf("invalid intake data: %w", err)
//	}
//	result, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	sourceHubID kernel.UUID
	destHubID   kernel.UUID
	pieces      []kernel.Dimensions
	actorID     kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order. pieces
// holds the shipper-declared dimensions of each physical piece, in order.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	sourceHubID, destHubID kernel.UUID,
	pieces []kernel.Dimensions,
	actorID kernel.UUID,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setHubs(sourceHubID, destHubID),
		cmd.setPieces(pieces),
		cmd.setActorID(actorID),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will carry.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// SourceHubID returns the hub the order originates from.
func (c CreateOrderCommand) SourceHubID() kernel.UUID {
	return c.sourceHubID
}

// DestHubID returns the order's final destination hub.
func (c CreateOrderCommand) DestHubID() kernel.UUID {
	return c.destHubID
}

// Pieces returns the declared dimensions of each piece.
func (c CreateOrderCommand) Pieces() []kernel.Dimensions {
	return c.pieces
}

// ActorID returns the operator creating the order.
func (c CreateOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setHubs(sourceHubID, destHubID kernel.UUID) error {
	if err := sourceHubID.Validate(); err != nil {
		return err
	}
	if err := destHubID.Validate(); err != nil {
		return err
	}
	if sourceHubID.IsEqual(destHubID) {
		return ErrSameHub
	}

	c.sourceHubID = sourceHubID
	c.destHubID = destHubID
	return nil
}

func (c *CreateOrderCommand) setPieces(pieces []kernel.Dimensions) error {
	if len(pieces) == 0 {
		return ErrPiecesAreRequired
	}
	for _, d := range pieces {
		if err := d.Validate(); err != nil {
			return err
		}
	}

	c.pieces = pieces
	return nil
}

func (c *CreateOrderCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
