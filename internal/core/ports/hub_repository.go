package ports

import (
	"context"

	"cargo/internal/core/domain/model/hub"
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/vehicle"
)

// HubRepository defines the persistence contract for the hub directory.
// Hubs are reference data; only reads are exposed to the application core.
type HubRepository interface {
	// Get retrieves a hub by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*hub.Hub, error)

	// GetByCode retrieves a hub by its short code.
	GetByCode(ctx context.Context, code string) (*hub.Hub, error)
}

// VehicleRepository defines the persistence contract for vehicles.
type VehicleRepository interface {
	// Get retrieves a vehicle by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error)

	// Update persists the in-use flag of a vehicle.
	Update(ctx context.Context, v *vehicle.Vehicle) error
}
