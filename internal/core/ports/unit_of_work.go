package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request or
// command. This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. It provides
// transaction control and hands out repositories bound to the current
// transaction. Client code must explicitly manage the transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns an error if no transaction is active or the commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns an error if no transaction is active or the rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current
	// transaction.
	OrderRepository() OrderRepository

	// OrderHistoryRepository returns an OrderHistoryRepository bound to
	// the current transaction.
	OrderHistoryRepository() OrderHistoryRepository

	// PieceRepository returns a PieceRepository bound to the current
	// transaction.
	PieceRepository() PieceRepository

	// ShipmentRepository returns a ShipmentRepository bound to the current
	// transaction.
	ShipmentRepository() ShipmentRepository

	// TransitRepository returns a TransitRepository bound to the current
	// transaction.
	TransitRepository() TransitRepository

	// CourierRepository returns a CourierRepository bound to the current
	// transaction.
	CourierRepository() CourierRepository

	// CorrectionRepository returns a CorrectionRepository bound to the
	// current transaction.
	CorrectionRepository() CorrectionRepository

	// HubRepository returns a HubRepository bound to the current
	// transaction.
	HubRepository() HubRepository

	// VehicleRepository returns a VehicleRepository bound to the current
	// transaction.
	VehicleRepository() VehicleRepository
}
