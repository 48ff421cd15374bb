// Package shipment contains the consolidation row: a billing-unit aggregate
// grouping an order's pieces that share identical weight and dimensions.
// Shipment rows are a derived cache over the piece ledger; the consolidator
// in the services package is the only writer of their quantity fields and
// self-heals any drift it detects.
package shipment

import (
	"errors"
	"fmt"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/pkg/errs"
)

// ErrShipmentIsNotConstructed is returned when a Shipment instance was not
// created through NewShipment, NewReweighedShipment or RestoreShipment.
var ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")

// Shipment is one consolidation row of an order. It carries the original
// declared dimension set and quantity, plus a parallel reweighed set that is
// populated once any of its pieces has been reweighed.
//
// Invariant: qtyReweigh must never exceed the count of pieces actually
// flagged reweighed and pointing at this row. The piece ledger is ground
// truth; the consolidator recomputes and repairs these counters.
type Shipment struct {
	id      kernel.UUID
	orderID kernel.UUID

	dims kernel.Dimensions
	qty  int

	reweighDims kernel.Dimensions
	qtyReweigh  int

	isConstructed bool
}

// NewShipment creates a consolidation row at order intake from declared
// dimensions.
func NewShipment(id, orderID kernel.UUID, dims kernel.Dimensions, qty int) (*Shipment, error) {
	s := &Shipment{isConstructed: true}

	if err := errors.Join(
		s.setID(id),
		s.setOrderID(orderID),
		s.setDimensions(dims),
		s.setQty(qty),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// NewReweighedShipment creates a row for a freshly reweighed piece that
// matched no existing row. Both dimension sets are populated and both
// quantities start at one.
func NewReweighedShipment(id, orderID kernel.UUID, dims kernel.Dimensions) (*Shipment, error) {
	s, err := NewShipment(id, orderID, dims, 1)
	if err != nil {
		return nil, err
	}
	s.reweighDims = dims
	s.qtyReweigh = 1
	return s, nil
}

// RestoreShipment reconstructs a row from persistence.
func RestoreShipment(
	id, orderID kernel.UUID,
	dims kernel.Dimensions,
	qty int,
	reweighDims kernel.Dimensions,
	qtyReweigh int,
) (*Shipment, error) {
	s := &Shipment{
		reweighDims:   reweighDims,
		qtyReweigh:    qtyReweigh,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setOrderID(orderID),
		s.setDimensions(dims),
		s.setQty(qty),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate ensures the Shipment instance was properly constructed.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

// ID returns the row identifier.
func (s *Shipment) ID() kernel.UUID { return s.id }

// OrderID returns the owning order.
func (s *Shipment) OrderID() kernel.UUID { return s.orderID }

// Dimensions returns the original declared dimension set.
func (s *Shipment) Dimensions() kernel.Dimensions { return s.dims }

// Qty returns the billing quantity.
func (s *Shipment) Qty() int { return s.qty }

// ReweighDimensions returns the measured dimension set; zero until any piece
// of the row has been reweighed.
func (s *Shipment) ReweighDimensions() kernel.Dimensions { return s.reweighDims }

// QtyReweigh returns the count of reweighed pieces attached to the row.
func (s *Shipment) QtyReweigh() int { return s.qtyReweigh }

// MatchesReweighed reports whether dims equal the populated reweighed set.
func (s *Shipment) MatchesReweighed(dims kernel.Dimensions) bool {
	return !s.reweighDims.IsZero() && s.reweighDims.IsEqual(dims)
}

// MatchesOriginal reports whether dims equal the declared set.
func (s *Shipment) MatchesOriginal(dims kernel.Dimensions) bool {
	return s.dims.IsEqual(dims)
}

// ChargeableWeight returns the billed weight of the row: quantity times the
// per-piece chargeable weight of the effective dimension set.
func (s *Shipment) ChargeableWeight() float64 {
	dims := s.dims
	qty := s.qty
	if !s.reweighDims.IsZero() {
		dims = s.reweighDims
	}
	return float64(qty) * dims.ChargeableWeight()
}

// AbsorbReweighedPiece records one more reweighed piece on the row. realCount
// is the recomputed number of reweighed pieces already pointing at the row,
// taken from the piece ledger; both counters are set to realCount+1, which
// also repairs any stale value.
func (s *Shipment) AbsorbReweighedPiece(dims kernel.Dimensions, realCount int) error {
	if realCount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("real count",
			fmt.Errorf("%d is negative", realCount))
	}
	if err := dims.Validate(); err != nil {
		return err
	}
	s.reweighDims = dims
	s.qtyReweigh = realCount + 1
	s.qty = realCount + 1
	return nil
}

// RepairReweighCount overwrites a drifted qtyReweigh with the recomputed
// real count from the piece ledger.
func (s *Shipment) RepairReweighCount(realCount int) error {
	if realCount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("real count",
			fmt.Errorf("%d is negative", realCount))
	}
	s.qtyReweigh = realCount
	return nil
}

// ReleasePiece records the departure of one piece from the row, setting the
// reweigh counter to the recomputed count of reweighed pieces that remain.
// The caller decides removal: when Qty() is already 1 or less the row must be
// deleted instead of decremented.
func (s *Shipment) ReleasePiece(remainingReweigh int) error {
	if remainingReweigh < 0 {
		return errs.NewValueIsInvalidErrorWithCause("remaining reweigh count",
			fmt.Errorf("%d is negative", remainingReweigh))
	}
	s.qty--
	s.qtyReweigh = remainingReweigh
	return nil
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	s.orderID = orderID
	return nil
}

func (s *Shipment) setDimensions(dims kernel.Dimensions) error {
	if err := dims.Validate(); err != nil {
		return err
	}
	s.dims = dims
	return nil
}

func (s *Shipment) setQty(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("qty", fmt.Errorf("%d is not greater than 0", qty))
	}
	s.qty = qty
	return nil
}
