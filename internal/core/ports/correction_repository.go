package ports

import (
	"context"

	"cargo/internal/core/domain/model/correction"
	"cargo/internal/core/domain/model/kernel"
)

// CorrectionRepository defines the persistence contract for correction
// requests.
type CorrectionRepository interface {
	// Add persists a new correction request.
	Add(ctx context.Context, req *correction.Request) error

	// Update persists a decision on an existing request.
	Update(ctx context.Context, req *correction.Request) error

	// Get retrieves a request by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*correction.Request, error)

	// GetAllPendingForOrder retrieves the undecided requests of one order.
	GetAllPendingForOrder(ctx context.Context, orderID kernel.UUID) ([]*correction.Request, error)
}
