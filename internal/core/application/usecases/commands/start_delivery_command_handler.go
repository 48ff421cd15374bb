package commands

import (
	"context"
	"fmt"
	"time"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/order"
	"cargo/internal/pkg/errs"
)

// StartDeliveryCommandHandler starts the last mile for an order waiting at
// its destination hub. The order row is locked so two dispatchers cannot
// hand the same order to two couriers.
type StartDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewStartDeliveryCommandHandler creates a handler for delivery starts.
func NewStartDeliveryCommandHandler(uowFactory DeliveryUoWFactory) StartDeliveryCommandHandler {
	return StartDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the command in a single row-locked transaction.
func (h StartDeliveryCommandHandler) Handle(ctx context.Context, command StartDeliveryCommand) error {
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
	if ord.Status() != order.OutForDelivery {
		return errs.NewInvalidStateErrorWithCause(
			"order is not ready for delivery",
			fmt.Errorf("order %s status is %s", ord.TrackingCode(), ord.Status().String()),
		)
	}

	assigned, err := uow.CourierRepository().Get(ctx, command.CourierID())
	if err != nil {
		return err
	}
	if !assigned.IsEligible() {
		return errs.NewInvalidStateErrorWithCause(
			"courier is not eligible",
			fmt.Errorf("courier %s", assigned.Name()),
		)
	}

	if err = ord.AssignDeliveryCourier(assigned.ID()); err != nil {
		return err
	}
	assigned.RecordAssignment(time.Now().UTC())

	if err = uow.OrderRepository().Update(ctx, ord); err != nil {
		return err
	}
	if err = uow.CourierRepository().Update(ctx, assigned); err != nil {
		return err
	}

	entry, err := order.NewHistoryEntry(
		kernel.NewUUID(), ord.ID(), ord.Status(), "delivery started", command.ActorID(),
	)
	if err != nil {
		return err
	}
	if err = uow.OrderHistoryRepository().Add(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
