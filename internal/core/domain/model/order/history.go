package order

import (
	"time"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/pkg/errs"
)

// HistoryEntry is one row of the order audit trail. A new entry is written
// for every status-affecting mutation; the latest entry doubles as the
// idempotency check for the deferred pickup-ready promotion.
type HistoryEntry struct {
	id        kernel.UUID
	orderID   kernel.UUID
	status    Status
	remark    string
	actorID   kernel.UUID
	createdAt time.Time
}

// NewHistoryEntry creates an audit-trail entry. The actor is the explicit
// acting-user id threaded through the calling operation, never ambient state.
func NewHistoryEntry(id, orderID kernel.UUID, status Status, remark string, actorID kernel.UUID) (*HistoryEntry, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if err := actorID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("actor id", err)
	}

	return &HistoryEntry{
		id:        id,
		orderID:   orderID,
		status:    status,
		remark:    remark,
		actorID:   actorID,
		createdAt: time.Now().UTC(),
	}, nil
}

// RestoreHistoryEntry reconstructs an entry from persistence.
func RestoreHistoryEntry(id, orderID kernel.UUID, status Status, remark string, actorID kernel.UUID, createdAt time.Time) *HistoryEntry {
	return &HistoryEntry{
		id:        id,
		orderID:   orderID,
		status:    status,
		remark:    remark,
		actorID:   actorID,
		createdAt: createdAt,
	}
}

// ID returns the entry identifier.
func (h *HistoryEntry) ID() kernel.UUID { return h.id }

// OrderID returns the owning order.
func (h *HistoryEntry) OrderID() kernel.UUID { return h.orderID }

// Status returns the order status recorded by this entry.
func (h *HistoryEntry) Status() Status { return h.status }

// Remark returns the free-text note attached to the entry.
func (h *HistoryEntry) Remark() string { return h.remark }

// ActorID returns the acting user who caused the mutation.
func (h *HistoryEntry) ActorID() kernel.UUID { return h.actorID }

// CreatedAt returns when the entry was written.
func (h *HistoryEntry) CreatedAt() time.Time { return h.createdAt }
