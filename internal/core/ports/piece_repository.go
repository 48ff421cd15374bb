package ports

import (
	"context"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/piece"
)

// PieceRepository defines the persistence contract for the piece ledger.
// Pieces are the ground truth for order status derivation and shipment
// consolidation; repositories never aggregate over them, the domain services
// do.
type PieceRepository interface {
	// Add persists a new piece.
	Add(ctx context.Context, pc *piece.Piece) error

	// Update persists changes to an existing piece.
	Update(ctx context.Context, pc *piece.Piece) error

	// Get retrieves a piece by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*piece.Piece, error)

	// GetByCode retrieves a piece by its business code (P{orderNo}-{n}).
	GetByCode(ctx context.Context, code string) (*piece.Piece, error)

	// GetAllForOrder retrieves the full piece ledger of one order.
	GetAllForOrder(ctx context.Context, orderID kernel.UUID) ([]*piece.Piece, error)

	// Delete removes a piece. Used by the bulk reweigh delete action after
	// the consolidator has reduced the owning shipment row.
	Delete(ctx context.Context, id kernel.UUID) error

	// MarkAllReceivedForOrders sets the inbound status of every piece of
	// the given orders to received at the given hub in one statement.
	// Used by transit arrival confirmation, where per-piece loads would be
	// wasteful.
	MarkAllReceivedForOrders(ctx context.Context, orderIDs []kernel.UUID, hubID kernel.UUID) error
}
