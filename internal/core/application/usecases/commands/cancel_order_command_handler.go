package commands

import (
	"context"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/order"
)

// CancelOrderCommandHandler cancels an order. The aggregate enforces the
// guard: orders that have been picked up, shipped, delivered, or already
// cancelled cannot be cancelled, nor can orders with settled payment.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cancellation command.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, command CancelOrderCommand) error {
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

	orderRepo := uow.OrderRepository()

	ord, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if err = ord.Cancel(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, ord); err != nil {
		return err
	}

	remark := command.Remark()
	if remark == "" {
		remark = "order cancelled"
	}
	entry, err := order.NewHistoryEntry(
		kernel.NewUUID(), ord.ID(), order.Cancelled, remark, command.ActorID(),
	)
	if err != nil {
		return err
	}
	if err = uow.OrderHistoryRepository().Add(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
