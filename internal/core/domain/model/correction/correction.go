// Package correction contains the correction request entity: a proposed
// piece dimension/weight change for an order whose reweigh is already
// finalized. Requests await separate approval; only approval mutates the
// piece ledger.
package correction

import (
	"errors"
	"fmt"
	"time"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/pkg/errs"
)

// ErrRequestIsNotConstructed is returned when a Request instance was not
// created through NewRequest or RestoreRequest.
var ErrRequestIsNotConstructed = errors.New("Request must be created via NewRequest constructor")

// Status is the lifecycle of a correction request.
type Status int

const (
	// StatusPending means the request awaits a decision.
	StatusPending Status = 0

	// StatusApproved means the proposed values were applied to the piece.
	StatusApproved Status = 1

	// StatusRejected means the request was declined without effect.
	StatusRejected Status = 2
)

// Validate checks the Status is one of the defined values.
func (s Status) Validate() error {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("correction status",
			fmt.Errorf("%d is not a valid status", s))
	}
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusApproved:
		return "Approved"
	case StatusRejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}

// Request is one proposed piece correction. A request is only created when
// the proposed values actually differ from the piece's current values.
type Request struct {
	id       kernel.UUID
	orderID  kernel.UUID
	pieceID  kernel.UUID
	proposed kernel.Dimensions

	status      Status
	requestedBy kernel.UUID
	decidedBy   *kernel.UUID
	createdAt   time.Time

	isConstructed bool
}

// NewRequest creates a pending correction request.
func NewRequest(id, orderID, pieceID kernel.UUID, proposed kernel.Dimensions, requestedBy kernel.UUID) (*Request, error) {
	r := &Request{
		status:        StatusPending,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setOrderID(orderID),
		r.setPieceID(pieceID),
		r.setProposed(proposed),
		r.setRequestedBy(requestedBy),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRequest reconstructs a request from persistence.
func RestoreRequest(
	id, orderID, pieceID kernel.UUID,
	proposed kernel.Dimensions,
	status Status,
	requestedBy kernel.UUID,
	decidedBy *kernel.UUID,
	createdAt time.Time,
) (*Request, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	r := &Request{
		status:        status,
		decidedBy:     decidedBy,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setOrderID(orderID),
		r.setPieceID(pieceID),
		r.setProposed(proposed),
		r.setRequestedBy(requestedBy),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// Validate ensures the Request instance was properly constructed.
func (r *Request) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRequestIsNotConstructed
	}
	return nil
}

// ID returns the request identifier.
func (r *Request) ID() kernel.UUID { return r.id }

// OrderID returns the order the correction targets.
func (r *Request) OrderID() kernel.UUID { return r.orderID }

// PieceID returns the piece the correction targets.
func (r *Request) PieceID() kernel.UUID { return r.pieceID }

// Proposed returns the proposed dimension set.
func (r *Request) Proposed() kernel.Dimensions { return r.proposed }

// Status returns the request lifecycle status.
func (r *Request) Status() Status { return r.status }

// RequestedBy returns the acting user who submitted the request.
func (r *Request) RequestedBy() kernel.UUID { return r.requestedBy }

// DecidedBy returns the acting user who approved or rejected the request.
func (r *Request) DecidedBy() *kernel.UUID { return r.decidedBy }

// CreatedAt returns when the request was submitted.
func (r *Request) CreatedAt() time.Time { return r.createdAt }

// Approve moves a pending request to Approved. The caller applies the
// proposed values to the piece in the same unit of work.
func (r *Request) Approve(decidedBy kernel.UUID) error {
	return r.decide(StatusApproved, decidedBy)
}

// Reject moves a pending request to Rejected.
func (r *Request) Reject(decidedBy kernel.UUID) error {
	return r.decide(StatusRejected, decidedBy)
}

func (r *Request) decide(to Status, decidedBy kernel.UUID) error {
	if r.status != StatusPending {
		return errs.NewInvalidStateErrorWithCause(
			"correction request is already decided",
			fmt.Errorf("status is %s", r.status.String()),
		)
	}
	if err := decidedBy.Validate(); err != nil {
		return err
	}
	r.status = to
	r.decidedBy = &decidedBy
	return nil
}

func (r *Request) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Request) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	r.orderID = orderID
	return nil
}

func (r *Request) setPieceID(pieceID kernel.UUID) error {
	if err := pieceID.Validate(); err != nil {
		return err
	}
	r.pieceID = pieceID
	return nil
}

func (r *Request) setProposed(dims kernel.Dimensions) error {
	if err := dims.Validate(); err != nil {
		return err
	}
	r.proposed = dims
	return nil
}

func (r *Request) setRequestedBy(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	r.requestedBy = actorID
	return nil
}
