package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/order"
	"cargo/internal/core/domain/model/piece"
	"cargo/internal/core/domain/services"
)

// CreateOrderResult reports the identifiers allocated during intake.
type CreateOrderResult struct {
	OrderNo      int64
	TrackingCode string
}

// CreateOrderCommandHandler runs order intake: allocates the order number
// and tracking code, creates the declared pieces and their consolidation
// rows, records the intake history entry, and attempts pickup auto-assign.
// An auto-assign miss is logged and swallowed; intake still succeeds and the
// assignment job retries later.
type CreateOrderCommandHandler struct {
	uowFactory  IntakeUoWFactory
	pickupDelay time.Duration
	log         *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order intake.
// pickupDelay is how long after creation the order becomes eligible for the
// deferred promotion to ReadyForPickup.
func NewCreateOrderCommandHandler(
	uowFactory IntakeUoWFactory,
	pickupDelay time.Duration,
	log *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:  uowFactory,
		pickupDelay: pickupDelay,
		log:         log.With("component", "create-order"),
	}
}

// Handle processes the intake command inside a single transaction.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, command CreateOrderCommand) (CreateOrderResult, error) {
	if err := command.Validate(); err != nil {
		return CreateOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	pieceRepo := uow.PieceRepository()
	shipmentRepo := uow.ShipmentRepository()
	historyRepo := uow.OrderHistoryRepository()

	no, err := orderRepo.NextOrderNo(ctx)
	if err != nil {
		return CreateOrderResult{}, err
	}

	trackingCode := buildTrackingCode(no)
	pickupReadyAt := time.Now().UTC().Add(h.pickupDelay)

	newOrder, err := order.NewOrder(
		command.OrderID(), no, trackingCode,
		command.SourceHubID(), command.DestHubID(),
		pickupReadyAt,
	)
	if err != nil {
		return CreateOrderResult{}, err
	}

	if err = orderRepo.Add(ctx, newOrder); err != nil {
		return CreateOrderResult{}, err
	}

	shipments, index, err := services.NewShipmentConsolidator().SeedIntake(newOrder.ID(), command.Pieces())
	if err != nil {
		return CreateOrderResult{}, err
	}
	for _, row := range shipments {
		if err = shipmentRepo.Add(ctx, row); err != nil {
			return CreateOrderResult{}, err
		}
	}

	for i, dims := range command.Pieces() {
		pc, pcErr := piece.NewPiece(
			kernel.NewUUID(), piece.BuildCode(no, i+1),
			newOrder.ID(), shipments[index[i]].ID(), dims,
		)
		if pcErr != nil {
			return CreateOrderResult{}, pcErr
		}
		if err = pieceRepo.Add(ctx, pc); err != nil {
			return CreateOrderResult{}, err
		}
		if err = newOrder.AddPiece(pc.ID()); err != nil {
			return CreateOrderResult{}, err
		}
	}

	entry, err := order.NewHistoryEntry(
		kernel.NewUUID(), newOrder.ID(), order.Draft, "order created", command.ActorID(),
	)
	if err != nil {
		return CreateOrderResult{}, err
	}
	if err = historyRepo.Add(ctx, entry); err != nil {
		return CreateOrderResult{}, err
	}

	h.tryAutoAssign(ctx, uow, newOrder)

	if err = uow.Commit(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	return CreateOrderResult{OrderNo: no, TrackingCode: trackingCode}, nil
}

// tryAutoAssign picks an eligible pickup courier for the new order. Any
// failure is logged and swallowed: intake must not depend on courier
// availability.
func (h CreateOrderCommandHandler) tryAutoAssign(ctx context.Context, uow IntakeUoW, newOrder *order.Order) {
	courierRepo := uow.CourierRepository()

	couriers, err := courierRepo.GetAllActive(ctx)
	if err != nil {
		h.log.Warn("auto-assign skipped", "order", newOrder.TrackingCode(), "error", err)
		return
	}

	picked, err := services.NewCourierBalancer().PickForAuto(couriers, newOrder.SourceHubID())
	if err != nil {
		if errors.Is(err, services.ErrNoCourierAvailable) {
			h.log.Warn("no courier available for pickup", "order", newOrder.TrackingCode())
		} else {
			h.log.Warn("auto-assign failed", "order", newOrder.TrackingCode(), "error", err)
		}
		return
	}

	if err = newOrder.AssignPickupCourier(picked.ID()); err != nil {
		h.log.Warn("auto-assign failed", "order", newOrder.TrackingCode(), "error", err)
		return
	}
	picked.RecordAssignment(time.Now().UTC())

	if err = uow.OrderRepository().Update(ctx, newOrder); err != nil {
		h.log.Warn("auto-assign failed", "order", newOrder.TrackingCode(), "error", err)
		return
	}
	if err = courierRepo.Update(ctx, picked); err != nil {
		h.log.Warn("auto-assign failed", "order", newOrder.TrackingCode(), "error", err)
	}
}

// buildTrackingCode derives the customer-facing tracking code from the
// numeric order number.
func buildTrackingCode(no int64) string {
	return fmt.Sprintf("CGO%08d", no)
}
