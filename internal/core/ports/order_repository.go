// Package ports defines the contracts between the application core and
// infrastructure: repository interfaces per aggregate, the unit of work
// boundary, and outbound collaborator interfaces. Adapters implement them;
// command and query handlers depend on them only.
package ports

import (
	"context"
	"time"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order aggregate and takes a row lock on it
	// for the lifetime of the current transaction. Callers use it for
	// status rewinds and courier assignment, where two operators acting at
	// once must serialize.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByTrackingCode retrieves an order by its customer-facing code.
	GetByTrackingCode(ctx context.Context, trackingCode string) (*order.Order, error)

	// GetAllDueForPickupRelease retrieves Draft orders whose persisted
	// pickup-ready time is at or before now. Used by the deferred
	// promotion job.
	GetAllDueForPickupRelease(ctx context.Context, now time.Time) ([]*order.Order, error)

	// GetAllAwaitingPickupAssignment retrieves ReadyForPickup orders that
	// have no pickup courier yet.
	GetAllAwaitingPickupAssignment(ctx context.Context) ([]*order.Order, error)

	// Delete removes an order permanently. The delete guard in the domain
	// restricts this to Draft and Cancelled orders; piece, shipment and
	// history rows of the order are removed with it.
	Delete(ctx context.Context, id kernel.UUID) error

	// NextOrderNo allocates the next numeric order number. Must be called
	// inside the intake transaction so the number is never burned on a
	// failed intake.
	NextOrderNo(ctx context.Context) (int64, error)
}

// OrderHistoryRepository appends and reads the audit trail of an order.
// History rows are append-only.
type OrderHistoryRepository interface {
	Add(ctx context.Context, entry *order.HistoryEntry) error
	GetAllForOrder(ctx context.Context, orderID kernel.UUID) ([]*order.HistoryEntry, error)
}
