package commands

import (
	"context"
	"fmt"
	"log/slog"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/order"
	"cargo/internal/core/domain/model/piece"
	"cargo/internal/core/domain/services"
	"cargo/internal/pkg/errs"
)

// BulkReweighOutcome reports the result of one action of a bulk batch, in
// input order.
type BulkReweighOutcome struct {
	Kind      BulkReweighActionKind
	PieceCode string
	OK        bool
	Error     string
}

// BulkReweighCommandHandler executes a heterogeneous reweigh batch. The
// whole batch must resolve to a single order, which is checked before any
// write. Each action then runs in its own transaction so a failure in the
// middle of the batch keeps earlier actions persisted; callers read the
// per-action outcomes to see what landed.
type BulkReweighCommandHandler struct {
	uowFactory ReweighUoWFactory
	log        *slog.Logger
}

// NewBulkReweighCommandHandler creates a handler for bulk reweigh batches.
func NewBulkReweighCommandHandler(uowFactory ReweighUoWFactory, log *slog.Logger) BulkReweighCommandHandler {
	return BulkReweighCommandHandler{
		uowFactory: uowFactory,
		log:        log.With("component", "bulk-reweigh"),
	}
}

// Handle resolves the batch to one order, executes the actions sequentially,
// and finalizes the order when every remaining piece ends up reweighed.
func (h BulkReweighCommandHandler) Handle(ctx context.Context, command BulkReweighCommand) ([]BulkReweighOutcome, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	orderID, err := h.resolveOrder(ctx, command.Actions())
	if err != nil {
		return nil, err
	}

	outcomes := make([]BulkReweighOutcome, 0, len(command.Actions()))
	for _, action := range command.Actions() {
		code, actErr := h.execute(ctx, orderID, action)
		outcome := BulkReweighOutcome{Kind: action.Kind(), PieceCode: code, OK: actErr == nil}
		if actErr != nil {
			outcome.Error = actErr.Error()
		}
		outcomes = append(outcomes, outcome)
	}

	if err = h.finalize(ctx, orderID, command.ActorID()); err != nil {
		h.log.Warn("order finalization after bulk reweigh failed",
			"order", orderID.String(), "error", err)
	}

	return outcomes, nil
}

// resolveOrder checks that every action targets the same order before any
// write happens. Add actions carry the order id; update and delete infer it
// from the targeted piece. A finalized order rejects the whole batch; its
// dimensions only change through an approved correction request.
func (h BulkReweighCommandHandler) resolveOrder(ctx context.Context, actions []BulkReweighAction) (kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pieceRepo := uow.PieceRepository()

	var orderID kernel.UUID
	for _, action := range actions {
		resolved := action.OrderID()
		if action.Kind() != BulkActionAdd {
			pc, err := pieceRepo.Get(ctx, action.PieceID())
			if err != nil {
				return kernel.UUID{}, err
			}
			resolved = pc.OrderID()
		}

		if err := orderID.Validate(); err != nil {
			orderID = resolved
			continue
		}
		if !orderID.IsEqual(resolved) {
			return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("actions", ErrOrderMismatch)
		}
	}

	ord, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return kernel.UUID{}, err
	}
	if ord.Reweighed() {
		return kernel.UUID{}, errs.NewInvalidStateErrorWithCause(
			"order reweigh is finalized, submit a correction request instead",
			fmt.Errorf("order %s", ord.TrackingCode()),
		)
	}

	return orderID, nil
}

// execute runs one action in its own transaction and returns the business
// code of the touched piece.
func (h BulkReweighCommandHandler) execute(ctx context.Context, orderID kernel.UUID, action BulkReweighAction) (string, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	var (
		code string
		err  error
	)
	switch action.Kind() {
	case BulkActionUpdate:
		code, err = h.executeUpdate(ctx, uow, orderID, action)
	case BulkActionDelete:
		code, err = h.executeDelete(ctx, uow, orderID, action)
	case BulkActionAdd:
		code, err = h.executeAdd(ctx, uow, orderID, action)
	default:
		err = fmt.Errorf("unknown bulk reweigh action kind %q", action.Kind())
	}
	if err != nil {
		return code, err
	}

	return code, uow.Commit(ctx)
}

func (h BulkReweighCommandHandler) executeUpdate(
	ctx context.Context, uow ReweighUoW, orderID kernel.UUID, action BulkReweighAction,
) (string, error) {
	pieceRepo := uow.PieceRepository()
	shipmentRepo := uow.ShipmentRepository()

	pieces, err := pieceRepo.GetAllForOrder(ctx, orderID)
	if err != nil {
		return "", err
	}
	pc := pieceByID(pieces, action.PieceID())
	if pc == nil {
		return "", errs.NewObjectNotFoundError("piece", action.PieceID().String())
	}

	shipments, err := shipmentRepo.GetAllForOrder(ctx, orderID)
	if err != nil {
		return pc.Code(), err
	}

	attach, reduce, err := services.NewShipmentConsolidator().Reassign(
		orderID, shipments, pieces, pc, action.Dims(),
	)
	if err != nil {
		return pc.Code(), err
	}
	if reduce.DriftRepaired {
		h.log.Warn("shipment reweigh count drift repaired",
			"order", orderID.String(), "shipment", reduce.Shipment.ID().String())
	}

	// A second update to the same piece before finalization is another
	// reading at the scale, not a correction.
	if err = pc.Reweigh(action.Dims()); err != nil {
		return pc.Code(), err
	}

	if err = persistConsolidation(ctx, shipmentRepo, attach, reduce); err != nil {
		return pc.Code(), err
	}
	return pc.Code(), pieceRepo.Update(ctx, pc)
}

func (h BulkReweighCommandHandler) executeDelete(
	ctx context.Context, uow ReweighUoW, orderID kernel.UUID, action BulkReweighAction,
) (string, error) {
	pieceRepo := uow.PieceRepository()
	shipmentRepo := uow.ShipmentRepository()

	pieces, err := pieceRepo.GetAllForOrder(ctx, orderID)
	if err != nil {
		return "", err
	}
	pc := pieceByID(pieces, action.PieceID())
	if pc == nil {
		return "", errs.NewObjectNotFoundError("piece", action.PieceID().String())
	}

	shipments, err := shipmentRepo.GetAllForOrder(ctx, orderID)
	if err != nil {
		return pc.Code(), err
	}

	reduce, err := services.NewShipmentConsolidator().Reduce(shipments, pieces, pc)
	if err != nil {
		return pc.Code(), err
	}
	if reduce.DriftRepaired {
		h.log.Warn("shipment reweigh count drift repaired",
			"order", orderID.String(), "shipment", reduce.Shipment.ID().String())
	}

	if reduce.Removed {
		err = shipmentRepo.Delete(ctx, reduce.Shipment.ID())
	} else {
		err = shipmentRepo.Update(ctx, reduce.Shipment)
	}
	if err != nil {
		return pc.Code(), err
	}

	return pc.Code(), pieceRepo.Delete(ctx, pc.ID())
}

func (h BulkReweighCommandHandler) executeAdd(
	ctx context.Context, uow ReweighUoW, orderID kernel.UUID, action BulkReweighAction,
) (string, error) {
	pieceRepo := uow.PieceRepository()
	shipmentRepo := uow.ShipmentRepository()

	ord, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return "", err
	}

	pieces, err := pieceRepo.GetAllForOrder(ctx, orderID)
	if err != nil {
		return "", err
	}
	codes := make([]string, 0, len(pieces))
	for _, p := range pieces {
		codes = append(codes, p.Code())
	}
	code := piece.NextCode(ord.No(), codes)

	shipments, err := shipmentRepo.GetAllForOrder(ctx, orderID)
	if err != nil {
		return code, err
	}

	attach, err := services.NewShipmentConsolidator().FindOrCreate(orderID, shipments, pieces, action.Dims())
	if err != nil {
		return code, err
	}

	pc, err := piece.NewPiece(kernel.NewUUID(), code, orderID, attach.Shipment.ID(), action.Dims())
	if err != nil {
		return code, err
	}
	// A piece added during reweigh was measured at the scale, so it enters
	// the ledger already reweighed.
	if err = pc.Reweigh(action.Dims()); err != nil {
		return code, err
	}

	if attach.Created {
		err = shipmentRepo.Add(ctx, attach.Shipment)
	} else {
		err = shipmentRepo.Update(ctx, attach.Shipment)
	}
	if err != nil {
		return code, err
	}

	return code, pieceRepo.Add(ctx, pc)
}

// finalize marks the order reweighed once every remaining piece is, and
// applies the derived status. Runs in its own transaction after the batch.
func (h BulkReweighCommandHandler) finalize(ctx context.Context, orderID, actorID kernel.UUID) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pieces, err := uow.PieceRepository().GetAllForOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if len(pieces) == 0 || !allReweighed(pieces) {
		return nil
	}

	ord, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return err
	}
	if ord.Reweighed() {
		return nil
	}

	prev := ord.Status()
	ord.MarkReweighed()
	if err = ord.ApplyDerivedStatus(deriveFromPieces(pieces)); err != nil {
		return err
	}
	if err = uow.OrderRepository().Update(ctx, ord); err != nil {
		return err
	}

	if ord.Status() != prev {
		entry, histErr := order.NewHistoryEntry(
			kernel.NewUUID(), ord.ID(), ord.Status(), "all pieces reweighed", actorID,
		)
		if histErr != nil {
			return histErr
		}
		if err = uow.OrderHistoryRepository().Add(ctx, entry); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
