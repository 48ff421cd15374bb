package order

import (
	"fmt"

	"cargo/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. The canonical status is
// a projection over the stage flags of the order's pieces (see
// services.DeriveStatus); the explicit transitions outside that projection
// are Draft promotion, cancellation and the admin delete guard.
//
// Lifecycle:
//
//	Draft ──> ReadyForPickup ──> PickedUp ──> InTransit ──> OutForDelivery ──> Delivered
//	  │              │
//	  └──────────────┴──> Cancelled   (blocked once pickup has happened)
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Draft is the initial status at intake, before the order is released
	// for pickup by the deferred promotion.
	Draft

	// ReadyForPickup means the order is released and waiting for a courier.
	ReadyForPickup

	// PickedUp means every piece has been collected from the shipper.
	PickedUp

	// InTransit means every piece has left its origin hub on a transit leg.
	InTransit

	// OutForDelivery means every piece was received at the final hub and is
	// on its last leg to the consignee.
	OutForDelivery

	// Delivered is the final successful state.
	Delivered

	// Cancelled is a terminal state reachable only before pickup.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "Unknown",
		Draft:          "Draft",
		ReadyForPickup: "ReadyForPickup",
		PickedUp:       "PickedUp",
		InTransit:      "InTransit",
		OutForDelivery: "OutForDelivery",
		Delivered:      "Delivered",
		Cancelled:      "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Draft:          "Draft",
		ReadyForPickup: "ReadyForPickup",
		PickedUp:       "PickedUp",
		InTransit:      "InTransit",
		OutForDelivery: "OutForDelivery",
		Delivered:      "Delivered",
		Cancelled:      "Cancelled",
	}
}

// Validate checks the Status is one of the defined lifecycle states.
// Used when reconstructing orders from persistence or parsing external input.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status, or "Unknown" for
// values outside the defined set.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ValidateCancel checks whether an order in this status may still be
// cancelled. Cancellation is blocked once any pickup progress exists and for
// terminal states.
func (s Status) ValidateCancel() error {
	switch s {
	case PickedUp, InTransit, OutForDelivery, Delivered, Cancelled:
		return errs.NewInvalidStateErrorWithCause(
			"order cannot be cancelled",
			fmt.Errorf("status is %s", s.String()),
		)
	default:
		return nil
	}
}

// ValidateDelete checks whether an order in this status may be physically
// deleted. Only Draft and Cancelled orders qualify for the admin delete path.
func (s Status) ValidateDelete() error {
	if s != Draft && s != Cancelled {
		return errs.NewInvalidStateErrorWithCause(
			"order cannot be deleted",
			fmt.Errorf("status is %s, delete is restricted to Draft and Cancelled", s.String()),
		)
	}
	return nil
}

// IsBeyondOutbound reports whether the order has already left on a transit
// leg. Orders in these states cannot be bundled into a new transit document.
func (s Status) IsBeyondOutbound() bool {
	return s == InTransit || s == OutForDelivery || s == Delivered
}
