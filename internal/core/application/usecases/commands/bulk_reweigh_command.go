package commands

import (
	"errors"
	"fmt"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/pkg/guard"
)

var (
	ErrBulkReweighCommandIsNotConstructed = errors.New(
		"BulkReweighCommand must be created via NewBulkReweighCommand constructor",
	)
	ErrActionsAreRequired = errors.New("at least one reweigh action is required")
	ErrOrderMismatch      = errors.New("all actions must target the same order")
)

// BulkReweighActionKind discriminates the three bulk reweigh actions.
type BulkReweighActionKind string

const (
	BulkActionUpdate BulkReweighActionKind = "update"
	BulkActionDelete BulkReweighActionKind = "delete"
	BulkActionAdd    BulkReweighActionKind = "add"
)

// BulkReweighAction is one entry of a bulk reweigh batch. Update and delete
// target an existing piece; add creates a new piece on an order.
type BulkReweighAction struct {
	kind    BulkReweighActionKind
	pieceID kernel.UUID
	orderID kernel.UUID
	dims    kernel.Dimensions
}

// NewBulkReweighUpdateAction builds an update action carrying measured
// dimensions for an existing piece.
func NewBulkReweighUpdateAction(pieceID kernel.UUID, dims kernel.Dimensions) (BulkReweighAction, error) {
	if err := pieceID.Validate(); err != nil {
		return BulkReweighAction{}, err
	}
	if err := dims.Validate(); err != nil {
		return BulkReweighAction{}, err
	}
	return BulkReweighAction{kind: BulkActionUpdate, pieceID: pieceID, dims: dims}, nil
}

// NewBulkReweighDeleteAction builds a delete action for an existing piece.
func NewBulkReweighDeleteAction(pieceID kernel.UUID) (BulkReweighAction, error) {
	if err := pieceID.Validate(); err != nil {
		return BulkReweighAction{}, err
	}
	return BulkReweighAction{kind: BulkActionDelete, pieceID: pieceID}, nil
}

// NewBulkReweighAddAction builds an add action creating a new measured piece
// on the given order.
func NewBulkReweighAddAction(orderID kernel.UUID, dims kernel.Dimensions) (BulkReweighAction, error) {
	if err := orderID.Validate(); err != nil {
		return BulkReweighAction{}, err
	}
	if err := dims.Validate(); err != nil {
		return BulkReweighAction{}, err
	}
	return BulkReweighAction{kind: BulkActionAdd, orderID: orderID, dims: dims}, nil
}

// Kind returns the action discriminator.
func (a BulkReweighAction) Kind() BulkReweighActionKind { return a.kind }

// PieceID returns the targeted piece for update and delete actions.
func (a BulkReweighAction) PieceID() kernel.UUID { return a.pieceID }

// OrderID returns the targeted order for add actions.
func (a BulkReweighAction) OrderID() kernel.UUID { return a.orderID }

// Dims returns the measured dimensions for update and add actions.
func (a BulkReweighAction) Dims() kernel.Dimensions { return a.dims }

func (a BulkReweighAction) validate() error {
	switch a.kind {
	case BulkActionUpdate, BulkActionDelete, BulkActionAdd:
		return nil
	default:
		return fmt.Errorf("unknown bulk reweigh action kind %q", a.kind)
	}
}

// BulkReweighCommand carries a heterogeneous batch of reweigh actions that
// must all resolve to one order. Actions run sequentially, each in its own
// transaction; a failing action does not roll back the ones before it.
type BulkReweighCommand struct { //nolint:recvcheck //using for validation
	actions []BulkReweighAction
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewBulkReweighCommand creates a bulk reweigh command. Actions must be
// built through their constructors.
func NewBulkReweighCommand(actions []BulkReweighAction, actorID kernel.UUID) (BulkReweighCommand, error) {
	cmd := BulkReweighCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActions(actions),
		cmd.setActorID(actorID),
	); err != nil {
		return BulkReweighCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c BulkReweighCommand) Validate() error {
	return c.guard.Validate(ErrBulkReweighCommandIsNotConstructed)
}

// Actions returns the batch in input order.
func (c BulkReweighCommand) Actions() []BulkReweighAction {
	return c.actions
}

// ActorID returns the warehouse operator running the batch.
func (c BulkReweighCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *BulkReweighCommand) setActions(actions []BulkReweighAction) error {
	if len(actions) == 0 {
		return ErrActionsAreRequired
	}
	for _, a := range actions {
		if err := a.validate(); err != nil {
			return err
		}
	}

	c.actions = actions
	return nil
}

func (c *BulkReweighCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
