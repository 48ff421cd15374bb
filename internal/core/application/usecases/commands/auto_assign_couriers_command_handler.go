package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"cargo/internal/core/domain/services"
)

// ErrNoOrdersAwaitingAssignment signals an empty retry sweep.
var ErrNoOrdersAwaitingAssignment = errors.New("no orders awaiting courier assignment")

// AutoAssignCouriersCommandHandler retries the pickup assignment that intake
// attempts opportunistically. Orders the balancer cannot serve are skipped
// and picked up by the next sweep.
type AutoAssignCouriersCommandHandler struct {
	uowFactory AssignUoWFactory
	log        *slog.Logger
}

// NewAutoAssignCouriersCommandHandler creates a handler for the retry sweep.
func NewAutoAssignCouriersCommandHandler(uowFactory AssignUoWFactory, log *slog.Logger) AutoAssignCouriersCommandHandler {
	return AutoAssignCouriersCommandHandler{
		uowFactory: uowFactory,
		log:        log,
	}
}

// Handle assigns a pickup courier to every waiting order it can, in one
// transaction. Couriers picked earlier in the sweep carry their bumped
// assignment time into later picks, so the rotation stays fair within a
// single run.
func (h AutoAssignCouriersCommandHandler) Handle(ctx context.Context, command AutoAssignCouriersCommand) error {
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
	courierRepo := uow.CourierRepository()

	waiting, err := orderRepo.GetAllAwaitingPickupAssignment(ctx)
	if err != nil {
		return err
	}
	if len(waiting) == 0 {
		return ErrNoOrdersAwaitingAssignment
	}

	couriers, err := courierRepo.GetAllActive(ctx)
	if err != nil {
		return err
	}

	balancer := services.NewCourierBalancer()
	assigned := 0

	for _, ord := range waiting {
		picked, err := balancer.PickForAuto(couriers, ord.SourceHubID())
		if errors.Is(err, services.ErrNoCourierAvailable) {
			continue
		}
		if err != nil {
			return err
		}

		if err = ord.AssignPickupCourier(picked.ID()); err != nil {
			return err
		}
		picked.RecordAssignment(time.Now().UTC())

		if err = orderRepo.Update(ctx, ord); err != nil {
			return err
		}
		if err = courierRepo.Update(ctx, picked); err != nil {
			return err
		}
		assigned++
	}

	if assigned == 0 {
		h.log.DebugContext(ctx, "auto assignment sweep made no progress",
			"waiting_orders", len(waiting))
	}

	return uow.Commit(ctx)
}
