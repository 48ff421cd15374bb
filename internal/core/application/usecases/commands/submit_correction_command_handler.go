package commands

import (
	"context"
	"fmt"

	"cargo/internal/core/domain/model/correction"
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/pkg/errs"
)

// SubmitCorrectionCommandHandler records a pending correction request. Only
// finalized orders take the correction path, and only a proposal that
// actually differs from the piece's current values produces a row.
type SubmitCorrectionCommandHandler struct {
	uowFactory CorrectionUoWFactory
}

// NewSubmitCorrectionCommandHandler creates a handler for correction
// submissions.
func NewSubmitCorrectionCommandHandler(uowFactory CorrectionUoWFactory) SubmitCorrectionCommandHandler {
	return SubmitCorrectionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the submission and returns the new request's id.
func (h SubmitCorrectionCommandHandler) Handle(ctx context.Context, command SubmitCorrectionCommand) (kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pc, err := uow.PieceRepository().Get(ctx, command.PieceID())
	if err != nil {
		return kernel.UUID{}, err
	}

	ord, err := uow.OrderRepository().Get(ctx, pc.OrderID())
	if err != nil {
		return kernel.UUID{}, err
	}
	if !ord.Reweighed() {
		return kernel.UUID{}, errs.NewInvalidStateErrorWithCause(
			"order reweigh is not finalized, use direct reweigh",
			fmt.Errorf("order %s", ord.TrackingCode()),
		)
	}

	if pc.Dimensions().IsEqual(command.Proposed()) {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(
			"proposed dimensions",
			fmt.Errorf("piece %s already has the proposed values", pc.Code()),
		)
	}

	req, err := correction.NewRequest(
		kernel.NewUUID(), ord.ID(), pc.ID(), command.Proposed(), command.ActorID(),
	)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.CorrectionRepository().Add(ctx, req); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}
	return req.ID(), nil
}
