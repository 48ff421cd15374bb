package order

import (
	"errors"
	"fmt"
	"time"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder. This ensures all orders are properly
// validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Order is the aggregate root for a customer order moving through the hub
// network. It owns the identifiers of its pieces (one-directional ownership;
// pieces point back by order id only, never by embedded reference) and the
// derived lifecycle status.
//
// Invariants:
//   - Must have a valid unique identifier, order number and tracking code
//   - Source and destination hubs are fixed at intake
//   - Status transitions follow the lifecycle in status.go
//   - Cancellation is blocked after pickup and after payment settlement
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	id           kernel.UUID
	no           int64
	trackingCode string
	status       Status

	reweighed      bool
	bypassReweigh  bool
	paymentSettled bool

	sourceHubID  kernel.UUID
	destHubID    kernel.UUID
	currentHubID *kernel.UUID
	nextHubID    *kernel.UUID

	pickupCourierID   *kernel.UUID
	deliveryCourierID *kernel.UUID
	vendorID          *kernel.UUID
	invoiceID         *kernel.UUID

	pieceIDs []kernel.UUID

	// pickupReadyAt is the persisted due time for the deferred
	// Draft -> ReadyForPickup promotion. It is written in the same
	// transaction as the order so the promotion survives a restart.
	pickupReadyAt time.Time
	createdAt     time.Time

	isConstructed bool
}

// NewOrder creates a new Order in Draft status. The order number drives piece
// business codes (P{no}-{n}); the tracking code is the customer-facing
// identifier. pickupReadyAt is the due time for the deferred promotion to
// ReadyForPickup.
func NewOrder(
	id kernel.UUID,
	no int64,
	trackingCode string,
	sourceHubID kernel.UUID,
	destHubID kernel.UUID,
	pickupReadyAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Draft,
		pickupReadyAt: pickupReadyAt,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNo(no),
		o.setTrackingCode(trackingCode),
		o.setHubs(sourceHubID, destHubID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence without re-running
// intake defaults. The caller is responsible for passing stored values only.
func RestoreOrder(
	id kernel.UUID,
	no int64,
	trackingCode string,
	status Status,
	sourceHubID, destHubID kernel.UUID,
	currentHubID, nextHubID *kernel.UUID,
	pickupCourierID, deliveryCourierID *kernel.UUID,
	vendorID, invoiceID *kernel.UUID,
	reweighed, bypassReweigh, paymentSettled bool,
	pieceIDs []kernel.UUID,
	pickupReadyAt, createdAt time.Time,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	o := &Order{
		status:            status,
		reweighed:         reweighed,
		bypassReweigh:     bypassReweigh,
		paymentSettled:    paymentSettled,
		currentHubID:      currentHubID,
		nextHubID:         nextHubID,
		pickupCourierID:   pickupCourierID,
		deliveryCourierID: deliveryCourierID,
		vendorID:          vendorID,
		invoiceID:         invoiceID,
		pieceIDs:          pieceIDs,
		pickupReadyAt:     pickupReadyAt,
		createdAt:         createdAt,
		isConstructed:     true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNo(no),
		o.setTrackingCode(trackingCode),
		o.setHubs(sourceHubID, destHubID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// No returns the numeric order number used in piece business codes.
func (o *Order) No() int64 { return o.no }

// TrackingCode returns the customer-facing tracking code.
func (o *Order) TrackingCode() string { return o.trackingCode }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// Reweighed reports whether every piece of the order has been reweighed.
func (o *Order) Reweighed() bool { return o.reweighed }

// BypassReweigh reports whether an operator waived the reweigh step.
func (o *Order) BypassReweigh() bool { return o.bypassReweigh }

// PaymentSettled reports whether the order's invoice has been paid.
func (o *Order) PaymentSettled() bool { return o.paymentSettled }

// SourceHubID returns the fixed origin hub.
func (o *Order) SourceHubID() kernel.UUID { return o.sourceHubID }

// DestHubID returns the fixed final destination hub.
func (o *Order) DestHubID() kernel.UUID { return o.destHubID }

// CurrentHubID returns the hub the order is physically at, nil before first
// hub arrival.
func (o *Order) CurrentHubID() *kernel.UUID { return o.currentHubID }

// NextHubID returns the next hub on the planned route, nil on the final leg.
func (o *Order) NextHubID() *kernel.UUID { return o.nextHubID }

// PickupCourierID returns the courier assigned to collect the order.
func (o *Order) PickupCourierID() *kernel.UUID { return o.pickupCourierID }

// DeliveryCourierID returns the courier assigned to the final delivery leg.
func (o *Order) DeliveryCourierID() *kernel.UUID { return o.deliveryCourierID }

// VendorID returns the linked vendor, if any.
func (o *Order) VendorID() *kernel.UUID { return o.vendorID }

// InvoiceID returns the linked invoice, if any.
func (o *Order) InvoiceID() *kernel.UUID { return o.invoiceID }

// PieceIDs returns the identifiers of the order's pieces.
func (o *Order) PieceIDs() []kernel.UUID { return o.pieceIDs }

// PickupReadyAt returns the due time of the deferred Draft promotion.
func (o *Order) PickupReadyAt() time.Time { return o.pickupReadyAt }

// CreatedAt returns the intake timestamp.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// AddPiece records ownership of a piece.
func (o *Order) AddPiece(pieceID kernel.UUID) error {
	if err := pieceID.Validate(); err != nil {
		return err
	}
	o.pieceIDs = append(o.pieceIDs, pieceID)
	return nil
}

// RemovePiece drops ownership of a piece. Removing an unknown piece is a
// no-op.
func (o *Order) RemovePiece(pieceID kernel.UUID) {
	for i, id := range o.pieceIDs {
		if id.IsEqual(pieceID) {
			o.pieceIDs = append(o.pieceIDs[:i], o.pieceIDs[i+1:]...)
			return
		}
	}
}

// ApplyDerivedStatus sets the status produced by the piece-flag projection.
// Two states are never overwritten by the projection: Cancelled is terminal,
// and Draft is only left via MarkReadyForPickup so the deferred promotion
// keeps sole ownership of that transition.
func (o *Order) ApplyDerivedStatus(derived Status) error {
	if err := derived.Validate(); err != nil {
		return err
	}
	if o.status == Cancelled {
		return nil
	}
	if o.status == Draft && derived == ReadyForPickup {
		return nil
	}
	o.status = derived
	return nil
}

// MarkReadyForPickup promotes a Draft order to ReadyForPickup.
func (o *Order) MarkReadyForPickup() error {
	if o.status != Draft {
		return errs.NewInvalidStateErrorWithCause(
			"order cannot be released for pickup",
			fmt.Errorf("status is %s, not Draft", o.status.String()),
		)
	}
	o.status = ReadyForPickup
	return nil
}

// Cancel transitions the order to Cancelled. Blocked after pickup progress
// and when payment is already settled.
func (o *Order) Cancel() error {
	if err := o.status.ValidateCancel(); err != nil {
		return err
	}
	if o.paymentSettled {
		return errs.NewInvalidStateError("order cannot be cancelled after payment is settled")
	}
	o.status = Cancelled
	return nil
}

// ValidateDelete checks the admin delete guard: only Draft and Cancelled
// orders may be physically removed.
func (o *Order) ValidateDelete() error {
	return o.status.ValidateDelete()
}

// MarkReweighed flips the order-level reweigh flag once the last piece has
// been reweighed.
func (o *Order) MarkReweighed() {
	o.reweighed = true
}

// WaiveReweigh marks the reweigh step as bypassed by an operator and treats
// the order as reweighed for downstream gating.
func (o *Order) WaiveReweigh() {
	o.bypassReweigh = true
	o.reweighed = true
}

// SettlePayment records that the invoice has been paid.
func (o *Order) SettlePayment() {
	o.paymentSettled = true
}

// ValidateWaitingForShipment checks the order qualifies for bundling into a
// transit document: reweighed (or bypassed) and not already on the road.
func (o *Order) ValidateWaitingForShipment() error {
	if !o.reweighed {
		return errs.NewInvalidStateErrorWithCause(
			"order is not waiting for shipment",
			fmt.Errorf("order %s has not completed reweigh", o.trackingCode),
		)
	}
	if o.status.IsBeyondOutbound() {
		return errs.NewInvalidStateErrorWithCause(
			"order is not waiting for shipment",
			fmt.Errorf("order %s status is %s", o.trackingCode, o.status.String()),
		)
	}
	return nil
}

// MoveTo updates the live position of the order on the route.
func (o *Order) MoveTo(currentHubID, nextHubID *kernel.UUID) {
	o.currentHubID = currentHubID
	o.nextHubID = nextHubID
}

// AssignPickupCourier sets the courier collecting the order from the shipper.
func (o *Order) AssignPickupCourier(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	o.pickupCourierID = &courierID
	return nil
}

// AssignDeliveryCourier sets the courier for the final delivery leg.
func (o *Order) AssignDeliveryCourier(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	o.deliveryCourierID = &courierID
	return nil
}

// LinkVendor associates the order with a vendor.
func (o *Order) LinkVendor(vendorID kernel.UUID) error {
	if err := vendorID.Validate(); err != nil {
		return err
	}
	o.vendorID = &vendorID
	return nil
}

// LinkInvoice associates the order with its invoice.
func (o *Order) LinkInvoice(invoiceID kernel.UUID) error {
	if err := invoiceID.Validate(); err != nil {
		return err
	}
	o.invoiceID = &invoiceID
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNo(no int64) error {
	if no <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order no", fmt.Errorf("%d is not greater than 0", no))
	}
	o.no = no
	return nil
}

func (o *Order) setTrackingCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("tracking code")
	}
	o.trackingCode = code
	return nil
}

func (o *Order) setHubs(sourceHubID, destHubID kernel.UUID) error {
	if err := sourceHubID.Validate(); err != nil {
		return err
	}
	if err := destHubID.Validate(); err != nil {
		return err
	}
	o.sourceHubID = sourceHubID
	o.destHubID = destHubID
	return nil
}
