package commands

import (
	"context"
	"log/slog"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/order"
)

// InboundScanOutcome reports the result of one scanned piece, in scan order.
type InboundScanOutcome struct {
	PieceID   kernel.UUID
	PieceCode string
	OK        bool
	Error     string
}

// InboundScanCommandHandler marks scanned pieces as received at a hub. Each
// piece is processed independently: a bad scan produces a failed outcome and
// the transaction still commits the pieces that landed. After the scans the
// touched orders get their position and derived status refreshed.
type InboundScanCommandHandler struct {
	uowFactory TransitUoWFactory
	log        *slog.Logger
}

// NewInboundScanCommandHandler creates a handler for inbound scans.
func NewInboundScanCommandHandler(uowFactory TransitUoWFactory, log *slog.Logger) InboundScanCommandHandler {
	return InboundScanCommandHandler{
		uowFactory: uowFactory,
		log:        log.With("component", "inbound-scan"),
	}
}

// Handle processes the scan command and returns per-piece outcomes.
func (h InboundScanCommandHandler) Handle(ctx context.Context, command InboundScanCommand) ([]InboundScanOutcome, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pieceRepo := uow.PieceRepository()

	outcomes := make([]InboundScanOutcome, 0, len(command.PieceIDs()))
	touched := make(map[kernel.UUID]struct{})

	for _, pieceID := range command.PieceIDs() {
		outcome := InboundScanOutcome{PieceID: pieceID}

		pc, err := pieceRepo.Get(ctx, pieceID)
		if err == nil {
			outcome.PieceCode = pc.Code()
			if err = pc.MarkReceived(command.HubID()); err == nil {
				err = pieceRepo.Update(ctx, pc)
			}
		}

		if err != nil {
			outcome.Error = err.Error()
			h.log.Warn("inbound scan rejected piece", "piece", pieceID.String(), "error", err)
		} else {
			outcome.OK = true
			touched[pc.OrderID()] = struct{}{}
		}
		outcomes = append(outcomes, outcome)
	}

	for orderID := range touched {
		if err := h.refreshOrder(ctx, uow, orderID, command.HubID(), command.ActorID()); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// refreshOrder moves the order to the receiving hub and re-derives its
// status from the piece ledger, recording a history row when the status
// changed.
func (h InboundScanCommandHandler) refreshOrder(
	ctx context.Context, uow TransitUoW, orderID, hubID, actorID kernel.UUID,
) error {
	ord, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return err
	}

	pieces, err := uow.PieceRepository().GetAllForOrder(ctx, orderID)
	if err != nil {
		return err
	}

	prev := ord.Status()
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

	if ord.Status() == prev {
		return nil
	}
	entry, err := order.NewHistoryEntry(
		kernel.NewUUID(), ord.ID(), ord.Status(), "pieces received at hub", actorID,
	)
	if err != nil {
		return err
	}
	return uow.OrderHistoryRepository().Add(ctx, entry)
}
