// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries bypass the aggregates and read optimized models straight from the
// database; all writes go through the commands package.
package queries

import (
	"errors"
	"time"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/pkg/guard"
)

var ErrListTransitsQueryIsNotConstructed = errors.New(
	"ListTransitsQuery must be created via NewListTransitsQuery constructor",
)

// ListTransitsQuery retrieves transit documents for the dispatch board,
// optionally narrowed to a destination hub and a calendar day.
//
// Example:
//
//	query, err := queries.NewListTransitsQuery(&hubID, nil)
//	if err != nil {
//	    return err
//	}
//	docs, err := handler.Handle(ctx, query)
type ListTransitsQuery struct {
	destHubID *kernel.UUID
	date      *time.Time

	guard guard.ConstructorGuard
}

// NewListTransitsQuery creates a transit listing query. Both filters are
// optional; nil means no restriction.
func NewListTransitsQuery(destHubID *kernel.UUID, date *time.Time) (ListTransitsQuery, error) {
	if destHubID != nil {
		if err := destHubID.Validate(); err != nil {
			return ListTransitsQuery{}, err
		}
	}

	return ListTransitsQuery{
		destHubID: destHubID,
		date:      date,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListTransitsQuery) Validate() error {
	return q.guard.Validate(ErrListTransitsQueryIsNotConstructed)
}

// DestHubID returns the optional destination hub filter.
func (q ListTransitsQuery) DestHubID() *kernel.UUID {
	return q.destHubID
}

// Date returns the optional calendar-day filter.
func (q ListTransitsQuery) Date() *time.Time {
	return q.date
}

// ListTransitsQueryResponse is one row of the dispatch board.
type ListTransitsQueryResponse struct {
	ID           kernel.UUID
	Code         string
	OriginHubID  kernel.UUID
	DestHubID    kernel.UUID
	TransitHubID *kernel.UUID
	Status       string
	TypeTag      string
	OrderCount   int
	CreatedAt    time.Time
}
