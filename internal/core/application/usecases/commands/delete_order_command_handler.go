package commands

import (
	"context"
)

// DeleteOrderCommandHandler hard-deletes an order together with its pieces,
// shipments, and history. The status guard (Draft or Cancelled only) runs on
// the aggregate before the delete is issued.
type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewDeleteOrderCommandHandler creates a handler for administrative deletes.
func NewDeleteOrderCommandHandler(uowFactory OrderUoWFactory) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the delete command.
func (h DeleteOrderCommandHandler) Handle(ctx context.Context, command DeleteOrderCommand) error {
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

	if err = ord.ValidateDelete(); err != nil {
		return err
	}

	if err = orderRepo.Delete(ctx, ord.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
