package services

import (
	"fmt"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/piece"
	"cargo/internal/core/domain/model/shipment"
	"cargo/internal/pkg/errs"
)

// ShipmentConsolidator keeps an order's consolidation rows in sync with its
// piece ledger. It is pure over in-memory aggregates: callers load the
// order's shipments and pieces inside a unit of work, apply the returned
// changes, and persist.
//
// The piece ledger is ground truth. Every quantity this service writes is
// recomputed from the pieces actually pointing at the row, so a drifted
// cached counter heals on the next touch.
type ShipmentConsolidator struct{}

// NewShipmentConsolidator creates a ShipmentConsolidator.
func NewShipmentConsolidator() ShipmentConsolidator {
	return ShipmentConsolidator{}
}

// AttachResult reports where a reweighed piece landed.
type AttachResult struct {
	// Shipment is the row the piece should attach to.
	Shipment *shipment.Shipment

	// Created is true when no existing row matched and Shipment is new.
	Created bool
}

// ReduceResult reports the effect of a piece leaving its row.
type ReduceResult struct {
	// Shipment is the row the piece departed from.
	Shipment *shipment.Shipment

	// Removed is true when the departing piece was the row's last and the
	// row must be deleted.
	Removed bool

	// DriftRepaired is true when the stored reweigh count exceeded the
	// recomputed real count and was overwritten. Callers log a warning.
	DriftRepaired bool
}

// FindOrCreate resolves the consolidation row for a piece reweighed to dims:
// rows are matched by reweighed dimensions first, then by original
// dimensions. On a hit the row's counters are set to the recomputed real
// count plus one; on a miss a new row with both dimension sets and quantity
// one is returned with Created set.
func (c ShipmentConsolidator) FindOrCreate(
	orderID kernel.UUID,
	shipments []*shipment.Shipment,
	pieces []*piece.Piece,
	dims kernel.Dimensions,
) (AttachResult, error) {
	if err := dims.Validate(); err != nil {
		return AttachResult{}, err
	}

	target := matchShipment(shipments, dims)
	if target == nil {
		created, err := shipment.NewReweighedShipment(kernel.NewUUID(), orderID, dims)
		if err != nil {
			return AttachResult{}, err
		}
		return AttachResult{Shipment: created, Created: true}, nil
	}

	real := countReweighedPieces(pieces, target.ID())
	if err := target.AbsorbReweighedPiece(dims, real); err != nil {
		return AttachResult{}, err
	}
	return AttachResult{Shipment: target}, nil
}

// Reduce records the departure of pc from its owning row. If the stored
// reweigh count exceeds the recomputed real count the row is repaired first.
// A row left with no pieces is reported for deletion rather than decremented
// to zero.
func (c ShipmentConsolidator) Reduce(
	shipments []*shipment.Shipment,
	pieces []*piece.Piece,
	pc *piece.Piece,
) (ReduceResult, error) {
	target := findByID(shipments, pc.ShipmentID())
	if target == nil {
		target = matchShipment(shipments, pc.Dimensions())
	}
	if target == nil {
		return ReduceResult{}, errs.NewObjectNotFoundErrorWithCause(
			"shipment", pc.ShipmentID().String(),
			fmt.Errorf("no consolidation row for piece %s", pc.Code()),
		)
	}

	return reduceFrom(target, pieces, pc)
}

// reduceFrom shrinks target by the departing piece pc. It recomputes the
// reweighed-piece count from the ledger, treating pc as legitimately counted
// whether or not it has already been repointed elsewhere; anything beyond
// that in the stored counter is drift and gets repaired.
func reduceFrom(target *shipment.Shipment, pieces []*piece.Piece, pc *piece.Piece) (ReduceResult, error) {
	result := ReduceResult{Shipment: target}

	remaining := 0
	for _, p := range pieces {
		if p.ID().IsEqual(pc.ID()) {
			continue
		}
		if p.Reweighed() && p.ShipmentID().IsEqual(target.ID()) {
			remaining++
		}
	}

	expected := remaining
	if pc.Reweighed() {
		expected++
	}
	if target.QtyReweigh() > expected {
		if err := target.RepairReweighCount(expected); err != nil {
			return ReduceResult{}, err
		}
		result.DriftRepaired = true
	}

	if target.Qty() <= 1 {
		result.Removed = true
		return result, nil
	}

	if err := target.ReleasePiece(remaining); err != nil {
		return ReduceResult{}, err
	}
	return result, nil
}

// Reassign moves pc to the row matching newDims and then reduces its old
// row. The piece is attached to the new row before the old row is touched so
// counts never go transiently negative. When the resolved row is the one the
// piece already occupies, no reduction happens.
func (c ShipmentConsolidator) Reassign(
	orderID kernel.UUID,
	shipments []*shipment.Shipment,
	pieces []*piece.Piece,
	pc *piece.Piece,
	newDims kernel.Dimensions,
) (AttachResult, ReduceResult, error) {
	oldShipmentID := pc.ShipmentID()

	// When the new dimensions resolve to the row the piece already occupies,
	// refresh its counters from the ledger and stop; there is nothing to
	// shrink. The piece itself is excluded from the recount because its
	// absorption supplies the +1.
	if same := matchShipment(shipments, newDims); same != nil && same.ID().IsEqual(oldShipmentID) {
		real := 0
		for _, p := range pieces {
			if !p.ID().IsEqual(pc.ID()) && p.Reweighed() && p.ShipmentID().IsEqual(same.ID()) {
				real++
			}
		}
		if err := same.AbsorbReweighedPiece(newDims, real); err != nil {
			return AttachResult{}, ReduceResult{}, err
		}
		return AttachResult{Shipment: same}, ReduceResult{Shipment: same}, nil
	}

	attach, err := c.FindOrCreate(orderID, shipments, pieces, newDims)
	if err != nil {
		return AttachResult{}, ReduceResult{}, err
	}

	// Attach first; only then is the old row safe to shrink.
	if err = pc.AttachShipment(attach.Shipment.ID()); err != nil {
		return AttachResult{}, ReduceResult{}, err
	}

	old := findByID(shipments, oldShipmentID)
	if old == nil {
		return AttachResult{}, ReduceResult{}, errs.NewObjectNotFoundError("shipment", oldShipmentID.String())
	}

	reduce, err := reduceFrom(old, pieces, pc)
	if err != nil {
		return AttachResult{}, ReduceResult{}, err
	}
	return attach, reduce, nil
}

// SeedIntake builds the initial consolidation rows for an order's declared
// pieces, grouping identical dimension sets into one row each. The returned
// index slice maps each input piece to its row.
func (c ShipmentConsolidator) SeedIntake(
	orderID kernel.UUID,
	dims []kernel.Dimensions,
) ([]*shipment.Shipment, []int, error) {
	shipments := make([]*shipment.Shipment, 0, len(dims))
	index := make([]int, len(dims))

	for i, d := range dims {
		pos := -1
		for j, s := range shipments {
			if s.MatchesOriginal(d) {
				pos = j
				break
			}
		}

		if pos == -1 {
			row, err := shipment.NewShipment(kernel.NewUUID(), orderID, d, 1)
			if err != nil {
				return nil, nil, err
			}
			shipments = append(shipments, row)
			index[i] = len(shipments) - 1
			continue
		}

		grown, err := shipment.RestoreShipment(
			shipments[pos].ID(), orderID, d, shipments[pos].Qty()+1,
			shipments[pos].ReweighDimensions(), shipments[pos].QtyReweigh(),
		)
		if err != nil {
			return nil, nil, err
		}
		shipments[pos] = grown
		index[i] = pos
	}

	return shipments, index, nil
}

func matchShipment(shipments []*shipment.Shipment, dims kernel.Dimensions) *shipment.Shipment {
	for _, s := range shipments {
		if s.MatchesReweighed(dims) {
			return s
		}
	}
	for _, s := range shipments {
		if s.MatchesOriginal(dims) {
			return s
		}
	}
	return nil
}

func findByID(shipments []*shipment.Shipment, id kernel.UUID) *shipment.Shipment {
	for _, s := range shipments {
		if s.ID().IsEqual(id) {
			return s
		}
	}
	return nil
}

func countReweighedPieces(pieces []*piece.Piece, shipmentID kernel.UUID) int {
	count := 0
	for _, p := range pieces {
		if p.Reweighed() && p.ShipmentID().IsEqual(shipmentID) {
			count++
		}
	}
	return count
}
