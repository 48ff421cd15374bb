package queries

import (
	"errors"
	"time"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/pkg/guard"
)

var ErrSuggestCouriersQueryIsNotConstructed = errors.New(
	"SuggestCouriersQuery must be created via NewSuggestCouriersQuery constructor",
)

// SuggestCouriersQuery ranks eligible couriers for a manual assignment at a
// hub. Dispatchers read the list top-down; the balancer's auto pick is
// always the first entry.
type SuggestCouriersQuery struct {
	hubID kernel.UUID

	guard guard.ConstructorGuard
}

// NewSuggestCouriersQuery creates a courier suggestion query.
func NewSuggestCouriersQuery(hubID kernel.UUID) (SuggestCouriersQuery, error) {
	if err := hubID.Validate(); err != nil {
		return SuggestCouriersQuery{}, err
	}

	return SuggestCouriersQuery{
		hubID: hubID,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q SuggestCouriersQuery) Validate() error {
	return q.guard.Validate(ErrSuggestCouriersQueryIsNotConstructed)
}

// HubID returns the hub the assignment originates from.
func (q SuggestCouriersQuery) HubID() kernel.UUID {
	return q.hubID
}

// SuggestCouriersQueryResponse is one ranked courier.
type SuggestCouriersQueryResponse struct {
	ID             kernel.UUID
	Name           string
	HubID          kernel.UUID
	OpenTaskCount  int
	LastAssignedAt time.Time
	DistanceKm     float64
}
