package queries

import (
	"errors"
	"time"

	"cargo/internal/core/domain/model/correction"
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/pkg/guard"
)

var ErrListCorrectionsQueryIsNotConstructed = errors.New(
	"ListCorrectionsQuery must be created via NewListCorrectionsQuery constructor",
)

// ListCorrectionsQuery retrieves correction requests, optionally narrowed to
// one decision status. Supervisors use the pending view as their work queue.
type ListCorrectionsQuery struct {
	status *correction.Status

	guard guard.ConstructorGuard
}

// NewListCorrectionsQuery creates a correction listing query. A nil status
// means all requests.
func NewListCorrectionsQuery(status *correction.Status) (ListCorrectionsQuery, error) {
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListCorrectionsQuery{}, err
		}
	}

	return ListCorrectionsQuery{
		status: status,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListCorrectionsQuery) Validate() error {
	return q.guard.Validate(ErrListCorrectionsQueryIsNotConstructed)
}

// Status returns the optional decision-status filter.
func (q ListCorrectionsQuery) Status() *correction.Status {
	return q.status
}

// ListCorrectionsQueryResponse is one correction request in the read model.
type ListCorrectionsQueryResponse struct {
	ID       kernel.UUID
	OrderID  kernel.UUID
	PieceID  kernel.UUID
	Proposed kernel.Dimensions
	Status   string

	RequestedBy kernel.UUID
	DecidedBy   *kernel.UUID
	CreatedAt   time.Time
}
