package ports

import (
	"context"

	"cargo/internal/core/domain/model/courier"
	"cargo/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for couriers. Filtering
// and ranking for assignment live in the balancer service; the repository
// only narrows the candidate set.
type CourierRepository interface {
	// Add persists a new courier.
	Add(ctx context.Context, c *courier.Courier) error

	// Update persists changes to an existing courier.
	Update(ctx context.Context, c *courier.Courier) error

	// Get retrieves a courier by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAllActive retrieves every courier that has not been deactivated.
	// Eligibility flags beyond the active bit are evaluated in the domain.
	GetAllActive(ctx context.Context) ([]*courier.Courier, error)
}
