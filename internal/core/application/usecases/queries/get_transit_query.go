package queries

import (
	"errors"
	"time"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/pkg/guard"
)

var ErrGetTransitQueryIsNotConstructed = errors.New(
	"GetTransitQuery must be created via NewGetTransitQuery constructor",
)

// GetTransitQuery retrieves one transit document together with the current
// state of every order bundled on it.
type GetTransitQuery struct {
	documentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetTransitQuery creates a transit detail query.
func NewGetTransitQuery(documentID kernel.UUID) (GetTransitQuery, error) {
	if err := documentID.Validate(); err != nil {
		return GetTransitQuery{}, err
	}

	return GetTransitQuery{
		documentID: documentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTransitQuery) Validate() error {
	return q.guard.Validate(ErrGetTransitQueryIsNotConstructed)
}

// DocumentID returns the requested document.
func (q GetTransitQuery) DocumentID() kernel.UUID {
	return q.documentID
}

// GetTransitQueryOrderRow is the state of one bundled order.
type GetTransitQueryOrderRow struct {
	OrderID      kernel.UUID
	TrackingCode string
	Status       string
}

// GetTransitQueryResponse is the transit detail read model.
type GetTransitQueryResponse struct {
	ID           kernel.UUID
	Code         string
	OriginHubID  kernel.UUID
	DestHubID    kernel.UUID
	TransitHubID *kernel.UUID
	VehicleID    kernel.UUID
	DriverID     kernel.UUID
	Status       string
	TypeTag      string
	CreatedAt    time.Time
	Orders       []GetTransitQueryOrderRow
}
