package commands

import (
	"context"
	"log/slog"

	"cargo/internal/core/domain/services"
	"cargo/internal/pkg/errs"
)

// DecideCorrectionCommandHandler resolves a pending correction request.
// Approval applies the proposed dimensions through the same consolidation
// path a reweigh takes, so consolidation rows stay in sync; rejection only
// flips the request status.
type DecideCorrectionCommandHandler struct {
	uowFactory CorrectionUoWFactory
	log        *slog.Logger
}

// NewDecideCorrectionCommandHandler creates a handler for correction
// decisions.
func NewDecideCorrectionCommandHandler(uowFactory CorrectionUoWFactory, log *slog.Logger) DecideCorrectionCommandHandler {
	return DecideCorrectionCommandHandler{
		uowFactory: uowFactory,
		log:        log.With("component", "correction"),
	}
}

// Handle processes the decision command.
func (h DecideCorrectionCommandHandler) Handle(ctx context.Context, command DecideCorrectionCommand) error {
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

	correctionRepo := uow.CorrectionRepository()

	req, err := correctionRepo.Get(ctx, command.RequestID())
	if err != nil {
		return err
	}

	if !command.Approve() {
		if err = req.Reject(command.ActorID()); err != nil {
			return err
		}
		if err = correctionRepo.Update(ctx, req); err != nil {
			return err
		}
		return uow.Commit(ctx)
	}

	if err = req.Approve(command.ActorID()); err != nil {
		return err
	}

	pieceRepo := uow.PieceRepository()
	shipmentRepo := uow.ShipmentRepository()

	pieces, err := pieceRepo.GetAllForOrder(ctx, req.OrderID())
	if err != nil {
		return err
	}
	pc := pieceByID(pieces, req.PieceID())
	if pc == nil {
		return errs.NewObjectNotFoundError("piece", req.PieceID().String())
	}

	shipments, err := shipmentRepo.GetAllForOrder(ctx, req.OrderID())
	if err != nil {
		return err
	}

	attach, reduce, err := services.NewShipmentConsolidator().Reassign(
		req.OrderID(), shipments, pieces, pc, req.Proposed(),
	)
	if err != nil {
		return err
	}
	if reduce.DriftRepaired {
		h.log.Warn("shipment reweigh count drift repaired",
			"order", req.OrderID().String(), "shipment", reduce.Shipment.ID().String())
	}

	if err = pc.ApplyCorrection(req.Proposed()); err != nil {
		return err
	}

	if err = persistConsolidation(ctx, shipmentRepo, attach, reduce); err != nil {
		return err
	}
	if err = pieceRepo.Update(ctx, pc); err != nil {
		return err
	}
	if err = correctionRepo.Update(ctx, req); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
