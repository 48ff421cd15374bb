package commands

import (
	"context"
	"log/slog"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/order"
	"cargo/internal/core/ports"
)

// BypassReceiveCommandHandler receives a whole order at a hub without
// per-piece scans. The order row is locked for the duration so a concurrent
// scan or confirm cannot interleave. The proof evidence is stored through
// the file collaborator after commit, fire-and-forget: a storage failure is
// logged but never undoes the receive.
type BypassReceiveCommandHandler struct {
	uowFactory DeliveryUoWFactory
	files      ports.FileStorage
	log        *slog.Logger
}

// NewBypassReceiveCommandHandler creates a handler for bypass receives.
func NewBypassReceiveCommandHandler(
	uowFactory DeliveryUoWFactory,
	files ports.FileStorage,
	log *slog.Logger,
) BypassReceiveCommandHandler {
	return BypassReceiveCommandHandler{
		uowFactory: uowFactory,
		files:      files,
		log:        log.With("component", "bypass-receive"),
	}
}

// Handle processes the override in a single row-locked transaction.
func (h BypassReceiveCommandHandler) Handle(ctx context.Context, command BypassReceiveCommand) error {
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

	pieces, err := uow.PieceRepository().GetAllForOrder(ctx, ord.ID())
	if err != nil {
		return err
	}
	for _, pc := range pieces {
		if err = pc.MarkReceived(command.HubID()); err != nil {
			return err
		}
		if err = uow.PieceRepository().Update(ctx, pc); err != nil {
			return err
		}
	}

	prev := ord.Status()
	if err = ord.ApplyDerivedStatus(deriveFromPieces(pieces)); err != nil {
		return err
	}
	hubID := command.HubID()
	ord.MoveTo(&hubID, nil)

	if err = uow.OrderRepository().Update(ctx, ord); err != nil {
		return err
	}

	if ord.Status() != prev {
		entry, histErr := order.NewHistoryEntry(
			kernel.NewUUID(), ord.ID(), ord.Status(), "bypass receive", command.ActorID(),
		)
		if histErr != nil {
			return histErr
		}
		if err = uow.OrderHistoryRepository().Add(ctx, entry); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if _, err = h.files.Store(ctx, ord.ID(), "bypass-receive-proof", command.Proof()); err != nil {
		h.log.Error("proof storage failed", "order", ord.TrackingCode(), "error", err)
	}
	return nil
}
