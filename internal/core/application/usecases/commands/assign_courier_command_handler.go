package commands

import (
	"context"
	"fmt"
	"time"

	"cargo/internal/pkg/errs"
)

// AssignCourierCommandHandler manually assigns a pickup courier. The order
// row is locked so the assignment job and a dispatcher cannot race on the
// same order.
type AssignCourierCommandHandler struct {
	uowFactory AssignUoWFactory
}

// NewAssignCourierCommandHandler creates a handler for manual assignments.
func NewAssignCourierCommandHandler(uowFactory AssignUoWFactory) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the assignment in a single row-locked transaction.
func (h AssignCourierCommandHandler) Handle(ctx context.Context, command AssignCourierCommand) error {
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

	if err = ord.AssignPickupCourier(assigned.ID()); err != nil {
		return err
	}
	assigned.RecordAssignment(time.Now().UTC())

	if err = uow.OrderRepository().Update(ctx, ord); err != nil {
		return err
	}
	if err = uow.CourierRepository().Update(ctx, assigned); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
