package services

import (
	"cargo/internal/core/domain/model/order"
	"cargo/internal/core/domain/model/piece"
)

// DeriveStatus projects the canonical order status from the stage vectors of
// all its pieces. The rule is all-agree, not majority: a single lagging piece
// keeps the whole order at the least-advanced matching stage.
//
// Priority order, first match wins:
//  1. every piece delivered                          -> Delivered
//  2. every piece received inbound, none delivered   -> OutForDelivery
//  3. every piece outbound, none received inbound    -> InTransit
//  4. every piece picked up, none outbound           -> PickedUp
//  5. otherwise                                      -> ReadyForPickup
//
// An order with no pieces is a Draft. Promotion of a Draft with pieces to
// ReadyForPickup is owned by the deferred pickup-ready transition, which is
// why Order.ApplyDerivedStatus refuses that single step.
func DeriveStatus(flags []piece.StageFlags) order.Status {
	if len(flags) == 0 {
		return order.Draft
	}

	if all(flags, func(f piece.StageFlags) bool { return f.Delivered }) {
		return order.Delivered
	}

	if all(flags, func(f piece.StageFlags) bool {
		return f.Inbound == piece.InboundReceived && !f.Delivered
	}) {
		return order.OutForDelivery
	}

	if all(flags, func(f piece.StageFlags) bool {
		return f.Outbound && f.Inbound == piece.InboundPending
	}) {
		return order.InTransit
	}

	if all(flags, func(f piece.StageFlags) bool { return f.PickedUp && !f.Outbound }) {
		return order.PickedUp
	}

	return order.ReadyForPickup
}

func all(flags []piece.StageFlags, match func(piece.StageFlags) bool) bool {
	for _, f := range flags {
		if !match(f) {
			return false
		}
	}
	return true
}
