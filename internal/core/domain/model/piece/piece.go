// Package piece contains the Piece entity: one physical parcel within an
// order, individually weighed and measured. Pieces are the ground truth for
// both order status derivation and shipment consolidation; order- and
// shipment-level values are caches re-derived from piece rows.
package piece

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/pkg/errs"
)

// ErrPieceIsNotConstructed is returned when a Piece instance was not created
// through NewPiece or RestorePiece.
var ErrPieceIsNotConstructed = errors.New("Piece must be created via NewPiece constructor")

// InboundStatus tracks reception of a piece at its destination hub.
type InboundStatus int

const (
	// InboundPending means the piece has not yet been scanned at the
	// destination hub.
	InboundPending InboundStatus = 0

	// InboundReceived means the piece was scanned in at the destination hub.
	InboundReceived InboundStatus = 1

	// InboundMissing means the piece was flagged as missing during the
	// inbound scan.
	InboundMissing InboundStatus = 2
)

// Validate checks the InboundStatus is one of the defined values.
func (s InboundStatus) Validate() error {
	switch s {
	case InboundPending, InboundReceived, InboundMissing:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("inbound status",
			fmt.Errorf("%d is not a valid inbound status", s))
	}
}

// StageFlags is the tagged status vector of one piece, the input to the
// order status projection.
type StageFlags struct {
	PickedUp  bool
	Outbound  bool
	Inbound   InboundStatus
	Delivered bool
}

// Piece is one physical parcel belonging to an order. It carries the piece's
// measured dimensions and the per-stage flags that drive the order lifecycle.
type Piece struct {
	id         kernel.UUID
	code       string
	orderID    kernel.UUID
	shipmentID kernel.UUID

	dims      kernel.Dimensions
	reweighed bool

	pickedUp     bool
	outbound     bool
	inbound      InboundStatus
	delivered    bool
	currentHubID *kernel.UUID

	isConstructed bool
}

// NewPiece creates a piece at order intake with shipper-declared dimensions.
func NewPiece(id kernel.UUID, code string, orderID, shipmentID kernel.UUID, dims kernel.Dimensions) (*Piece, error) {
	p := &Piece{isConstructed: true}

	if err := errors.Join(
		p.setID(id),
		p.setCode(code),
		p.setOrderID(orderID),
		p.setShipmentID(shipmentID),
		p.setDimensions(dims),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestorePiece reconstructs a piece from persistence.
func RestorePiece(
	id kernel.UUID,
	code string,
	orderID, shipmentID kernel.UUID,
	dims kernel.Dimensions,
	reweighed bool,
	pickedUp, outbound bool,
	inbound InboundStatus,
	delivered bool,
	currentHubID *kernel.UUID,
) (*Piece, error) {
	if err := inbound.Validate(); err != nil {
		return nil, err
	}

	p := &Piece{
		reweighed:     reweighed,
		pickedUp:      pickedUp,
		outbound:      outbound,
		inbound:       inbound,
		delivered:     delivered,
		currentHubID:  currentHubID,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setCode(code),
		p.setOrderID(orderID),
		p.setShipmentID(shipmentID),
		p.setDimensions(dims),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate ensures the Piece instance was properly constructed.
func (p *Piece) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPieceIsNotConstructed
	}
	return nil
}

// ID returns the piece identifier.
func (p *Piece) ID() kernel.UUID { return p.id }

// Code returns the business code, P{orderNo}-{n}.
func (p *Piece) Code() string { return p.code }

// OrderID returns the owning order.
func (p *Piece) OrderID() kernel.UUID { return p.orderID }

// ShipmentID returns the consolidation row the piece is attached to.
func (p *Piece) ShipmentID() kernel.UUID { return p.shipmentID }

// Dimensions returns the piece's current weight and size.
func (p *Piece) Dimensions() kernel.Dimensions { return p.dims }

// Reweighed reports whether the piece has been re-measured at the hub.
func (p *Piece) Reweighed() bool { return p.reweighed }

// PickedUp reports whether the piece was collected from the shipper.
func (p *Piece) PickedUp() bool { return p.pickedUp }

// Outbound reports whether the piece has left on a transit leg.
func (p *Piece) Outbound() bool { return p.outbound }

// Inbound returns the destination-hub reception status.
func (p *Piece) Inbound() InboundStatus { return p.inbound }

// Delivered reports whether the piece reached the consignee.
func (p *Piece) Delivered() bool { return p.delivered }

// CurrentHubID returns the hub the piece is physically at, nil before first
// hub arrival.
func (p *Piece) CurrentHubID() *kernel.UUID { return p.currentHubID }

// StageFlags returns the piece's stage vector for status derivation.
func (p *Piece) StageFlags() StageFlags {
	return StageFlags{
		PickedUp:  p.pickedUp,
		Outbound:  p.outbound,
		Inbound:   p.inbound,
		Delivered: p.delivered,
	}
}

// Reweigh replaces the shipper-declared dimensions with measured values.
// A piece can only be reweighed once; later edits go through the correction
// request path.
func (p *Piece) Reweigh(dims kernel.Dimensions) error {
	if p.reweighed {
		return errs.NewInvalidStateErrorWithCause(
			"piece is already reweighed",
			fmt.Errorf("piece %s", p.code),
		)
	}
	if err := dims.Validate(); err != nil {
		return err
	}
	p.dims = dims
	p.reweighed = true
	return nil
}

// ApplyCorrection overwrites dimensions of an already-reweighed piece. Only
// the approval of a correction request may call this.
func (p *Piece) ApplyCorrection(dims kernel.Dimensions) error {
	if err := dims.Validate(); err != nil {
		return err
	}
	p.dims = dims
	return nil
}

// AttachShipment repoints the piece at a different consolidation row.
// Callers must attach to the new row before reducing the old one so counts
// never go transiently negative.
func (p *Piece) AttachShipment(shipmentID kernel.UUID) error {
	return p.setShipmentID(shipmentID)
}

// MarkPickedUp records collection from the shipper.
func (p *Piece) MarkPickedUp() {
	p.pickedUp = true
}

// MarkOutbound records departure on a transit leg and resets the inbound
// state for the next hub.
func (p *Piece) MarkOutbound() {
	p.outbound = true
	p.inbound = InboundPending
}

// ResetOutbound clears the outbound flag, used when an order is pulled off a
// transit document.
func (p *Piece) ResetOutbound() {
	p.outbound = false
}

// MarkReceived records reception at hubID during an inbound scan.
func (p *Piece) MarkReceived(hubID kernel.UUID) error {
	if err := hubID.Validate(); err != nil {
		return err
	}
	p.inbound = InboundReceived
	p.currentHubID = &hubID
	return nil
}

// MarkMissing flags the piece as missing during an inbound scan.
func (p *Piece) MarkMissing() {
	p.inbound = InboundMissing
}

// MarkDelivered records delivery to the consignee.
func (p *Piece) MarkDelivered() {
	p.delivered = true
}

func (p *Piece) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Piece) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("piece code")
	}
	p.code = code
	return nil
}

func (p *Piece) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	p.orderID = orderID
	return nil
}

func (p *Piece) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}
	p.shipmentID = shipmentID
	return nil
}

func (p *Piece) setDimensions(dims kernel.Dimensions) error {
	if err := dims.Validate(); err != nil {
		return err
	}
	p.dims = dims
	return nil
}

// BuildCode formats the business code of the n-th piece of an order.
func BuildCode(orderNo int64, n int) string {
	return fmt.Sprintf("P%d-%d", orderNo, n)
}

// NextCode returns the code for a piece added after intake: the max numeric
// suffix among existing codes plus one. Codes that do not match the
// P{orderNo}-{n} shape are ignored.
func NextCode(orderNo int64, existingCodes []string) string {
	prefix := fmt.Sprintf("P%d-", orderNo)
	maxSuffix := 0
	for _, code := range existingCodes {
		rest, ok := strings.CutPrefix(code, prefix)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(rest)
		if err != nil {
			continue
		}
		if n > maxSuffix {
			maxSuffix = n
		}
	}
	return BuildCode(orderNo, maxSuffix+1)
}
