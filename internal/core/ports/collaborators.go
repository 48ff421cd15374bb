package ports

import (
	"context"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/transit"
)

// FileStorage stores operator-supplied evidence files, such as the proof
// photo required by the bypass-receive flow. Returns a retrievable path.
// Invoked fire-and-forget outside the owning transaction: a committed
// database change may reference a file that failed to persist.
type FileStorage interface {
	Store(ctx context.Context, ownerID kernel.UUID, purpose string, content []byte) (string, error)
}

// DocumentRenderer renders a transit document into a printable artifact and
// returns its URI.
type DocumentRenderer interface {
	RenderTransitDocument(ctx context.Context, doc *transit.Document) (string, error)
}

// Notifier pushes order events to interested parties. Delivery failures are
// logged by the caller, never propagated.
type Notifier interface {
	Notify(ctx context.Context, category string, orderID kernel.UUID, hubID *kernel.UUID) error
}

// RateProvider quotes the shipping price for a chargeable weight on a lane.
// The estimate is consumed verbatim for invoicing.
type RateProvider interface {
	Quote(ctx context.Context, sourceHubID, destHubID kernel.UUID, chargeableWeight float64) (int64, error)
}
