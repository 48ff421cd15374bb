package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/order"
)

// ErrNoOrdersDueForRelease signals an empty promotion sweep. The scheduler
// treats it as a normal outcome, not a failure.
var ErrNoOrdersDueForRelease = errors.New("no orders due for pickup release")

// ReleasePickupReadyCommandHandler promotes due Draft orders to
// ReadyForPickup. The due set comes from persisted state, and each order is
// re-checked against its latest history entry before writing, so a sweep
// that races a cancel or a manual edit skips the moved order instead of
// clobbering it.
type ReleasePickupReadyCommandHandler struct {
	uowFactory OrderUoWFactory
	log        *slog.Logger
}

// NewReleasePickupReadyCommandHandler creates a handler for the promotion
// sweep.
func NewReleasePickupReadyCommandHandler(uowFactory OrderUoWFactory, log *slog.Logger) ReleasePickupReadyCommandHandler {
	return ReleasePickupReadyCommandHandler{
		uowFactory: uowFactory,
		log:        log,
	}
}

// Handle promotes every due order inside one transaction. Orders that moved
// since the due query are skipped; the rest of the sweep still commits.
func (h ReleasePickupReadyCommandHandler) Handle(ctx context.Context, command ReleasePickupReadyCommand) error {
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

	orderRepo := uow.OrderRepository()
	historyRepo := uow.OrderHistoryRepository()

	due, err := orderRepo.GetAllDueForPickupRelease(ctx, time.Now().UTC())
	if err != nil {
		return err
	}
	if len(due) == 0 {
		return ErrNoOrdersDueForRelease
	}

	for _, ord := range due {
		entries, err := historyRepo.GetAllForOrder(ctx, ord.ID())
		if err != nil {
			return err
		}
		if len(entries) > 0 && entries[len(entries)-1].Status() != order.Draft {
			h.log.WarnContext(ctx, "skipping pickup release, order moved since due query",
				"order_id", ord.ID().String(),
				"latest_status", entries[len(entries)-1].Status().String(),
			)
			continue
		}

		if err = ord.MarkReadyForPickup(); err != nil {
			h.log.WarnContext(ctx, "skipping pickup release",
				"order_id", ord.ID().String(), "error", err)
			continue
		}
		if err = orderRepo.Update(ctx, ord); err != nil {
			return err
		}

		entry, err := order.NewHistoryEntry(
			kernel.NewUUID(), ord.ID(), order.ReadyForPickup,
			"released for pickup", command.ActorID(),
		)
		if err != nil {
			return err
		}
		if err = historyRepo.Add(ctx, entry); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
