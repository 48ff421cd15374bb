package ports

import (
	"context"
	"time"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/transit"
)

// TransitRepository defines the persistence contract for transit documents.
type TransitRepository interface {
	// Add persists a new transit document.
	Add(ctx context.Context, doc *transit.Document) error

	// Update persists changes to an existing document.
	Update(ctx context.Context, doc *transit.Document) error

	// Get retrieves a document by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*transit.Document, error)

	// NextSequenceForHubDate returns the next per-day sequence number for
	// documents headed to the given destination hub, derived from a count
	// of existing rows. Two concurrent creations for the same hub and day
	// can observe the same count and collide on the code; the unique index
	// on the code column rejects the loser.
	NextSequenceForHubDate(ctx context.Context, destHubID kernel.UUID, date time.Time) (int, error)
}
