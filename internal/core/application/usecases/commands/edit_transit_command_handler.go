package commands

import (
	"context"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/order"
	"cargo/internal/core/domain/model/transit"
)

// EditTransitCommandHandler diffs a document's order list against the
// submitted one. Added orders are validated, loaded onto the leg, and set to
// InTransit. Removed orders are pulled off the leg: their pieces drop the
// outbound flag and the order lands in OutForDelivery at the hub it is
// currently at, ready for local handling. The two directions are not
// symmetric on purpose.
type EditTransitCommandHandler struct {
	uowFactory TransitUoWFactory
}

// NewEditTransitCommandHandler creates a handler for transit edits.
func NewEditTransitCommandHandler(uowFactory TransitUoWFactory) EditTransitCommandHandler {
	return EditTransitCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the edit in a single transaction.
func (h EditTransitCommandHandler) Handle(ctx context.Context, command EditTransitCommand) error {
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

	added, removed := diffCodes(doc.TrackingCodes(), command.TrackingCodes())

	if err = doc.ReplaceTrackingCodes(command.TrackingCodes()); err != nil {
		return err
	}
	if err = uow.TransitRepository().Update(ctx, doc); err != nil {
		return err
	}

	for _, code := range added {
		if err = h.attachOrder(ctx, uow, doc, code, command.ActorID()); err != nil {
			return err
		}
	}
	for _, code := range removed {
		if err = h.detachOrder(ctx, uow, doc, code, command.ActorID()); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

func (h EditTransitCommandHandler) attachOrder(
	ctx context.Context, uow TransitUoW, doc *transit.Document, code string, actorID kernel.UUID,
) error {
	ord, err := uow.OrderRepository().GetByTrackingCode(ctx, code)
	if err != nil {
		return err
	}
	if err = ord.ValidateWaitingForShipment(); err != nil {
		return err
	}

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

	if err = ord.ApplyDerivedStatus(order.InTransit); err != nil {
		return err
	}
	origin := doc.OriginHubID()
	next := legNextHub(doc)
	ord.MoveTo(&origin, &next)

	if err = uow.OrderRepository().Update(ctx, ord); err != nil {
		return err
	}

	entry, err := order.NewHistoryEntry(
		kernel.NewUUID(), ord.ID(), order.InTransit, "added to transit "+doc.Code(), actorID,
	)
	if err != nil {
		return err
	}
	return uow.OrderHistoryRepository().Add(ctx, entry)
}

func (h EditTransitCommandHandler) detachOrder(
	ctx context.Context, uow TransitUoW, doc *transit.Document, code string, actorID kernel.UUID,
) error {
	ord, err := uow.OrderRepository().GetByTrackingCode(ctx, code)
	if err != nil {
		return err
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

	if err = ord.ApplyDerivedStatus(order.OutForDelivery); err != nil {
		return err
	}
	ord.MoveTo(ord.CurrentHubID(), nil)

	if err = uow.OrderRepository().Update(ctx, ord); err != nil {
		return err
	}

	entry, err := order.NewHistoryEntry(
		kernel.NewUUID(), ord.ID(), order.OutForDelivery, "removed from transit "+doc.Code(), actorID,
	)
	if err != nil {
		return err
	}
	return uow.OrderHistoryRepository().Add(ctx, entry)
}

// legNextHub is the hub the leg heads to next: the intermediate transit hub
// when one is set, otherwise the destination hub.
func legNextHub(doc *transit.Document) kernel.UUID {
	if doc.TransitHubID() != nil {
		return *doc.TransitHubID()
	}
	return doc.DestHubID()
}

// diffCodes returns the codes present only in next (added) and only in prev
// (removed), preserving input order.
func diffCodes(prev, next []string) (added, removed []string) {
	prevSet := make(map[string]struct{}, len(prev))
	for _, c := range prev {
		prevSet[c] = struct{}{}
	}
	nextSet := make(map[string]struct{}, len(next))
	for _, c := range next {
		nextSet[c] = struct{}{}
	}

	for _, c := range next {
		if _, ok := prevSet[c]; !ok {
			added = append(added, c)
		}
	}
	for _, c := range prev {
		if _, ok := nextSet[c]; !ok {
			removed = append(removed, c)
		}
	}
	return added, removed
}
