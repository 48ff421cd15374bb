package commands

import (
	"context"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/order"
)

// InboundConfirmCommandHandler receives a whole transit document at once:
// one bulk statement flips every piece of every order on the document to
// received, the document is marked arrived, and the orders hop to the
// confirming hub with their status re-derived.
type InboundConfirmCommandHandler struct {
	uowFactory TransitUoWFactory
}

// NewInboundConfirmCommandHandler creates a handler for arrival
// confirmations.
func NewInboundConfirmCommandHandler(uowFactory TransitUoWFactory) InboundConfirmCommandHandler {
	return InboundConfirmCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the confirmation in a single transaction.
func (h InboundConfirmCommandHandler) Handle(ctx context.Context, command InboundConfirmCommand) error {
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

	doc, err := uow.TransitRepository().Get(ctx, command.DocumentID())
	if err != nil {
		return err
	}
	if err = doc.MarkArrived(); err != nil {
		return err
	}
	if err = uow.TransitRepository().Update(ctx, doc); err != nil {
		return err
	}

	orders := make([]*order.Order, 0, len(doc.TrackingCodes()))
	orderIDs := make([]kernel.UUID, 0, len(doc.TrackingCodes()))
	for _, code := range doc.TrackingCodes() {
		ord, ordErr := uow.OrderRepository().GetByTrackingCode(ctx, code)
		if ordErr != nil {
			return ordErr
		}
		orders = append(orders, ord)
		orderIDs = append(orderIDs, ord.ID())
	}

	if err = uow.PieceRepository().MarkAllReceivedForOrders(ctx, orderIDs, command.HubID()); err != nil {
		return err
	}

	hubID := command.HubID()
	for _, ord := range orders {
		prev := ord.Status()

		pieces, pcErr := uow.PieceRepository().GetAllForOrder(ctx, ord.ID())
		if pcErr != nil {
			return pcErr
		}
		if err = ord.ApplyDerivedStatus(deriveFromPieces(pieces)); err != nil {
			return err
		}

		var next *kernel.UUID
		if !ord.DestHubID().IsEqual(hubID) {
			next = ord.NextHubID()
		}
		ord.MoveTo(&hubID, next)

		if err = uow.OrderRepository().Update(ctx, ord); err != nil {
			return err
		}

		if ord.Status() != prev {
			entry, histErr := order.NewHistoryEntry(
				kernel.NewUUID(), ord.ID(), ord.Status(), "arrival confirmed, transit "+doc.Code(), command.ActorID(),
			)
			if histErr != nil {
				return histErr
			}
			if err = uow.OrderHistoryRepository().Add(ctx, entry); err != nil {
				return err
			}
		}
	}

	return uow.Commit(ctx)
}
