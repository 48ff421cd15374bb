package ports

import (
	"context"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for consolidation rows.
type ShipmentRepository interface {
	// Add persists a new consolidation row.
	Add(ctx context.Context, row *shipment.Shipment) error

	// Update persists changes to an existing row.
	Update(ctx context.Context, row *shipment.Shipment) error

	// GetAllForOrder retrieves all consolidation rows of one order.
	GetAllForOrder(ctx context.Context, orderID kernel.UUID) ([]*shipment.Shipment, error)

	// Delete removes a row that the consolidator emptied.
	Delete(ctx context.Context, id kernel.UUID) error
}
