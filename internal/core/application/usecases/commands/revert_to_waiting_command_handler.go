package commands

import (
	"context"
	"fmt"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/order"
	"cargo/internal/pkg/errs"
)

// RevertToWaitingCommandHandler pulls a moving order back into the waiting
// pool. Only the forward-looking outbound flags are cleared; pickup and
// inbound history on the pieces is kept as it happened. The order row is
// locked against concurrent transit operations.
type RevertToWaitingCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewRevertToWaitingCommandHandler creates a handler for reverts.
func NewRevertToWaitingCommandHandler(uowFactory DeliveryUoWFactory) RevertToWaitingCommandHandler {
	return RevertToWaitingCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the revert in a single row-locked transaction.
func (h RevertToWaitingCommandHandler) Handle(ctx context.Context, command RevertToWaitingCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ord, err := uow.OrderRepository().GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return err
	}
	if ord.Status() != order.InTransit && ord.Status() != order.OutForDelivery {
		return errs.NewInvalidStateErrorWithCause(
			"order is not moving",
			fmt.Errorf("order %s status is %s", ord.TrackingCode(), ord.Status().String()),
		)
	}

	pieces, err := uow.PieceRepository().GetAllForOrder(ctx, ord.ID())
	if err != nil {
		return err
	}
	for _, pc := range pieces {
		pc.ResetOutbound()
		if err = uow.PieceRepository().Update(ctx, pc); err != nil {
			return err
		}
	}

	if err = ord.ApplyDerivedStatus(deriveFromPieces(pieces)); err != nil {
		return err
	}
	ord.MoveTo(ord.CurrentHubID(), nil)

	if err = uow.OrderRepository().Update(ctx, ord); err != nil {
		return err
	}

	entry, err := order.NewHistoryEntry(
		kernel.NewUUID(), ord.ID(), ord.Status(), "reverted to waiting", command.ActorID(),
	)
	if err != nil {
		return err
	}
	if err = uow.OrderHistoryRepository().Add(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
