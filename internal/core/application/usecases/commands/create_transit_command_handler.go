package commands

import (
	"context"
	"log/slog"
	"time"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/order"
	"cargo/internal/core/domain/model/transit"
	"cargo/internal/core/ports"
)

// CreateTransitCommandHandler opens a transit leg. Every tracking code must
// resolve to an order that passed the waiting-for-shipment guard (reweigh
// finalized, not already moving). The document code is sequenced per
// destination hub per day by counting today's documents; concurrent creates
// can race on that count, the unique index on the code is the backstop and
// the loser retries.
type CreateTransitCommandHandler struct {
	uowFactory TransitUoWFactory
	renderer   ports.DocumentRenderer
	log        *slog.Logger
}

// NewCreateTransitCommandHandler creates a handler for transit creation.
func NewCreateTransitCommandHandler(
	uowFactory TransitUoWFactory,
	renderer ports.DocumentRenderer,
	log *slog.Logger,
) CreateTransitCommandHandler {
	return CreateTransitCommandHandler{
		uowFactory: uowFactory,
		renderer:   renderer,
		log:        log.With("component", "create-transit"),
	}
}

// Handle processes the command in a single transaction and returns the
// generated document code.
func (h CreateTransitCommandHandler) Handle(ctx context.Context, command CreateTransitCommand) (string, error) {
	if err := command.Validate(); err != nil {
		return "", err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	orders := make([]*order.Order, 0, len(command.TrackingCodes()))
	for _, code := range command.TrackingCodes() {
		ord, err := orderRepo.GetByTrackingCode(ctx, code)
		if err != nil {
			return "", err
		}
		if err = ord.ValidateWaitingForShipment(); err != nil {
			return "", err
		}
		orders = append(orders, ord)
	}

	destHub, err := uow.HubRepository().Get(ctx, command.DestHubID())
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	seq, err := uow.TransitRepository().NextSequenceForHubDate(ctx, command.DestHubID(), now)
	if err != nil {
		return "", err
	}
	code := transit.BuildCode(now, destHub.Code(), seq)

	doc, err := transit.NewDocument(
		command.DocumentID(), code,
		command.OriginHubID(), command.DestHubID(), command.TransitHubID(),
		command.TrackingCodes(),
		command.VehicleID(), command.DriverID(),
		command.TypeTag(),
	)
	if err != nil {
		return "", err
	}
	if err = uow.TransitRepository().Add(ctx, doc); err != nil {
		return "", err
	}

	vehicle, err := uow.VehicleRepository().Get(ctx, command.VehicleID())
	if err != nil {
		return "", err
	}
	if err = vehicle.MarkInUse(); err != nil {
		return "", err
	}
	if err = uow.VehicleRepository().Update(ctx, vehicle); err != nil {
		return "", err
	}

	nextHubID := command.DestHubID()
	if command.TransitHubID() != nil {
		nextHubID = *command.TransitHubID()
	}

	for _, ord := range orders {
		if err = h.dispatchOrder(ctx, uow, ord, command, nextHubID, code); err != nil {
			return "", err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	// Manifest rendering is best effort: the dock can reprint from the
	// detail view if this fails.
	if uri, renderErr := h.renderer.RenderTransitDocument(ctx, doc); renderErr != nil {
		h.log.WarnContext(ctx, "failed to render transit manifest",
			"document_code", code, "error", renderErr)
	} else {
		h.log.InfoContext(ctx, "transit manifest rendered",
			"document_code", code, "uri", uri)
	}

	return code, nil
}

// dispatchOrder moves one order onto the leg: pieces go outbound, the order
// hops to the leg's next hub, and a history row records the transition. An
// order reaching its final destination hub on this leg goes straight to
// OutForDelivery, anything else to InTransit.
func (h CreateTransitCommandHandler) dispatchOrder(
	ctx context.Context,
	uow TransitUoW,
	ord *order.Order,
	command CreateTransitCommand,
	nextHubID kernel.UUID,
	docCode string,
) error {
	pieces, err := uow.PieceRepository().GetAllForOrder(ctx, ord.ID())
	if err != nil {
		return err
	}
	for _, pc := range pieces {
		pc.MarkOutbound()
		if err = uow.PieceRepository().Update(ctx, pc); err != nil {
			return err
		}
	}

	status := order.InTransit
	if ord.DestHubID().IsEqual(nextHubID) {
		status = order.OutForDelivery
	}
	if err = ord.ApplyDerivedStatus(status); err != nil {
		return err
	}

	origin := command.OriginHubID()
	ord.MoveTo(&origin, &nextHubID)

	if err = uow.OrderRepository().Update(ctx, ord); err != nil {
		return err
	}

	entry, err := order.NewHistoryEntry(
		kernel.NewUUID(), ord.ID(), status, "loaded on transit "+docCode, command.ActorID(),
	)
	if err != nil {
		return err
	}
	return uow.OrderHistoryRepository().Add(ctx, entry)
}
