package commands

import (
	"context"
	"fmt"
	"log/slog"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/order"
	"cargo/internal/core/domain/model/piece"
	"cargo/internal/core/domain/model/shipment"
	"cargo/internal/core/domain/services"
	"cargo/internal/core/ports"
	"cargo/internal/pkg/errs"
)

// ReweighPieceCommandHandler records measured dimensions for a single piece
// and keeps the order's consolidation rows in sync. When the last piece of
// an order gets reweighed the order is finalized: its reweighed flag is set,
// the derived status is applied, and invoice creation is signalled through
// the rate provider and notifier. The signal runs after commit and its
// failures are logged, never propagated.
type ReweighPieceCommandHandler struct {
	uowFactory ReweighUoWFactory
	rates      ports.RateProvider
	notifier   ports.Notifier
	log        *slog.Logger
}

// NewReweighPieceCommandHandler creates a handler for single-piece reweighs.
func NewReweighPieceCommandHandler(
	uowFactory ReweighUoWFactory,
	rates ports.RateProvider,
	notifier ports.Notifier,
	log *slog.Logger,
) ReweighPieceCommandHandler {
	return ReweighPieceCommandHandler{
		uowFactory: uowFactory,
		rates:      rates,
		notifier:   notifier,
		log:        log.With("component", "reweigh"),
	}
}

// Handle processes the reweigh command inside a single transaction.
func (h ReweighPieceCommandHandler) Handle(ctx context.Context, command ReweighPieceCommand) error {
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

	pieceRepo := uow.PieceRepository()
	shipmentRepo := uow.ShipmentRepository()
	orderRepo := uow.OrderRepository()

	loaded, err := pieceRepo.Get(ctx, command.PieceID())
	if err != nil {
		return err
	}
	if loaded.Reweighed() {
		return errs.NewInvalidStateErrorWithCause(
			"piece is already reweighed",
			fmt.Errorf("piece %s", loaded.Code()),
		)
	}

	orderID := loaded.OrderID()
	pieces, err := pieceRepo.GetAllForOrder(ctx, orderID)
	if err != nil {
		return err
	}
	pc := pieceByID(pieces, command.PieceID())
	if pc == nil {
		return errs.NewObjectNotFoundError("piece", command.PieceID().String())
	}

	shipments, err := shipmentRepo.GetAllForOrder(ctx, orderID)
	if err != nil {
		return err
	}

	attach, reduce, err := services.NewShipmentConsolidator().Reassign(
		orderID, shipments, pieces, pc, command.Dims(),
	)
	if err != nil {
		return err
	}
	if reduce.DriftRepaired {
		h.log.Warn("shipment reweigh count drift repaired",
			"order", orderID.String(), "shipment", reduce.Shipment.ID().String())
	}

	if err = pc.Reweigh(command.Dims()); err != nil {
		return err
	}

	if err = persistConsolidation(ctx, shipmentRepo, attach, reduce); err != nil {
		return err
	}
	if err = pieceRepo.Update(ctx, pc); err != nil {
		return err
	}

	finalized := allReweighed(pieces)
	var ord *order.Order
	if finalized {
		ord, err = orderRepo.Get(ctx, orderID)
		if err != nil {
			return err
		}
		if err = h.finalizeOrder(ctx, uow, ord, pieces, command.ActorID()); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if finalized {
		h.signalInvoice(ctx, ord, shipments, attach, reduce)
	}
	return nil
}

// finalizeOrder marks the order reweighed, applies the status derived from
// the piece ledger, and records a history entry when the status changed.
func (h ReweighPieceCommandHandler) finalizeOrder(
	ctx context.Context,
	uow ReweighUoW,
	ord *order.Order,
	pieces []*piece.Piece,
	actorID kernel.UUID,
) error {
	prev := ord.Status()
	ord.MarkReweighed()

	if err := ord.ApplyDerivedStatus(deriveFromPieces(pieces)); err != nil {
		return err
	}
	if err := uow.OrderRepository().Update(ctx, ord); err != nil {
		return err
	}

	if ord.Status() == prev {
		return nil
	}
	entry, err := order.NewHistoryEntry(
		kernel.NewUUID(), ord.ID(), ord.Status(), "all pieces reweighed", actorID,
	)
	if err != nil {
		return err
	}
	return uow.OrderHistoryRepository().Add(ctx, entry)
}

// signalInvoice quotes the finalized order and pushes the invoice-ready
// notification. Runs outside the transaction; failures are logged only.
func (h ReweighPieceCommandHandler) signalInvoice(
	ctx context.Context,
	ord *order.Order,
	shipments []*shipment.Shipment,
	attach services.AttachResult,
	reduce services.ReduceResult,
) {
	total := totalChargeableWeight(shipments, attach, reduce)

	if _, err := h.rates.Quote(ctx, ord.SourceHubID(), ord.DestHubID(), total); err != nil {
		h.log.Error("invoice quote failed", "order", ord.TrackingCode(), "error", err)
	}
	if err := h.notifier.Notify(ctx, "invoice-ready", ord.ID(), nil); err != nil {
		h.log.Error("invoice notification failed", "order", ord.TrackingCode(), "error", err)
	}
}

// persistConsolidation writes the attach/reduce outcome of a consolidator
// reassignment: new rows are inserted, emptied rows deleted, touched rows
// updated. The same-row case produces a single update.
func persistConsolidation(
	ctx context.Context,
	shipmentRepo ports.ShipmentRepository,
	attach services.AttachResult,
	reduce services.ReduceResult,
) error {
	if attach.Created {
		if err := shipmentRepo.Add(ctx, attach.Shipment); err != nil {
			return err
		}
	} else if err := shipmentRepo.Update(ctx, attach.Shipment); err != nil {
		return err
	}

	if reduce.Shipment == nil || reduce.Shipment.ID().IsEqual(attach.Shipment.ID()) {
		return nil
	}
	if reduce.Removed {
		return shipmentRepo.Delete(ctx, reduce.Shipment.ID())
	}
	return shipmentRepo.Update(ctx, reduce.Shipment)
}

// totalChargeableWeight sums chargeable weight over the order's rows after a
// reassignment, counting a freshly created row and skipping a removed one.
func totalChargeableWeight(
	shipments []*shipment.Shipment,
	attach services.AttachResult,
	reduce services.ReduceResult,
) float64 {
	total := 0.0
	for _, s := range shipments {
		if reduce.Removed && s.ID().IsEqual(reduce.Shipment.ID()) {
			continue
		}
		total += s.ChargeableWeight()
	}
	if attach.Created {
		total += attach.Shipment.ChargeableWeight()
	}
	return total
}

func pieceByID(pieces []*piece.Piece, id kernel.UUID) *piece.Piece {
	for _, p := range pieces {
		if p.ID().IsEqual(id) {
			return p
		}
	}
	return nil
}

func allReweighed(pieces []*piece.Piece) bool {
	for _, p := range pieces {
		if !p.Reweighed() {
			return false
		}
	}
	return true
}

func deriveFromPieces(pieces []*piece.Piece) order.Status {
	flags := make([]piece.StageFlags, 0, len(pieces))
	for _, p := range pieces {
		flags = append(flags, p.StageFlags())
	}
	return services.DeriveStatus(flags)
}
