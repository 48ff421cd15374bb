// Package transit contains the transit document ("delivery note") aggregate:
// a batched document listing multiple orders moving together between two
// hubs on one vehicle/driver leg.
package transit

import (
	"errors"
	"fmt"
	"time"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/pkg/errs"
)

// ErrDocumentIsNotConstructed is returned when a Document instance was not
// created through NewDocument or RestoreDocument.
var ErrDocumentIsNotConstructed = errors.New("Document must be created via NewDocument constructor")

// Status represents the lifecycle of a transit document.
type Status int

const (
	// StatusUnknown catches uninitialized values.
	StatusUnknown Status = iota

	// StatusCreated means the document is issued and the leg is under way.
	StatusCreated

	// StatusArrived means the destination hub confirmed reception.
	StatusArrived
)

// Validate checks the Status is one of the defined values.
func (s Status) Validate() error {
	if s != StatusCreated && s != StatusArrived {
		return errs.NewValueIsInvalidErrorWithCause("transit document status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	switch s {
	case StatusCreated:
		return "Created"
	case StatusArrived:
		return "Arrived"
	default:
		return "Unknown"
	}
}

// BuildCode formats the human-readable document code:
// {year}{month}{day}{destHubCode}{seq}, sequence zero-padded to three digits
// per destination hub per day.
func BuildCode(date time.Time, destHubCode string, seq int) string {
	return fmt.Sprintf("%s%s%03d", date.Format("20060102"), destHubCode, seq)
}

// Document is the transit document aggregate. It references bundled orders
// by tracking code; order and piece state changes belong to the commands
// operating on the document, not to the document itself.
type Document struct {
	id   kernel.UUID
	code string

	originHubID  kernel.UUID
	destHubID    kernel.UUID
	transitHubID *kernel.UUID

	trackingCodes []string
	vehicleID     kernel.UUID
	driverID      kernel.UUID

	status    Status
	typeTag   string
	createdAt time.Time

	isConstructed bool
}

// NewDocument creates a transit document in Created status. trackingCodes
// must already be validated against the waiting-for-shipment guard by the
// caller; the document only requires the list to be non-empty.
func NewDocument(
	id kernel.UUID,
	code string,
	originHubID, destHubID kernel.UUID,
	transitHubID *kernel.UUID,
	trackingCodes []string,
	vehicleID, driverID kernel.UUID,
	typeTag string,
) (*Document, error) {
	d := &Document{
		status:        StatusCreated,
		typeTag:       typeTag,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setCode(code),
		d.setHubs(originHubID, destHubID, transitHubID),
		d.setTrackingCodes(trackingCodes),
		d.setVehicle(vehicleID),
		d.setDriver(driverID),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDocument reconstructs a document from persistence.
func RestoreDocument(
	id kernel.UUID,
	code string,
	originHubID, destHubID kernel.UUID,
	transitHubID *kernel.UUID,
	trackingCodes []string,
	vehicleID, driverID kernel.UUID,
	status Status,
	typeTag string,
	createdAt time.Time,
) (*Document, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	d := &Document{
		status:        status,
		typeTag:       typeTag,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setCode(code),
		d.setHubs(originHubID, destHubID, transitHubID),
		d.setTrackingCodes(trackingCodes),
		d.setVehicle(vehicleID),
		d.setDriver(driverID),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// Validate ensures the Document instance was properly constructed.
func (d *Document) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDocumentIsNotConstructed
	}
	return nil
}

// ID returns the document identifier.
func (d *Document) ID() kernel.UUID { return d.id }

// Code returns the human-readable document code.
func (d *Document) Code() string { return d.code }

// OriginHubID returns the hub the leg departs from.
func (d *Document) OriginHubID() kernel.UUID { return d.originHubID }

// DestHubID returns the hub the leg arrives at.
func (d *Document) DestHubID() kernel.UUID { return d.destHubID }

// TransitHubID returns the optional intermediate hub.
func (d *Document) TransitHubID() *kernel.UUID { return d.transitHubID }

// TrackingCodes returns the bundled order tracking codes in document order.
func (d *Document) TrackingCodes() []string { return d.trackingCodes }

// VehicleID returns the assigned vehicle.
func (d *Document) VehicleID() kernel.UUID { return d.vehicleID }

// DriverID returns the assigned driver.
func (d *Document) DriverID() kernel.UUID { return d.driverID }

// Status returns the document lifecycle status.
func (d *Document) Status() Status { return d.status }

// TypeTag returns the free-form document type tag.
func (d *Document) TypeTag() string { return d.typeTag }

// CreatedAt returns when the document was issued.
func (d *Document) CreatedAt() time.Time { return d.createdAt }

// Contains reports whether the document bundles the given tracking code.
func (d *Document) Contains(trackingCode string) bool {
	for _, code := range d.trackingCodes {
		if code == trackingCode {
			return true
		}
	}
	return false
}

// ReplaceTrackingCodes swaps the bundled order list during an edit. The
// caller is responsible for applying the attach/detach side effects to the
// orders themselves.
func (d *Document) ReplaceTrackingCodes(codes []string) error {
	if d.status == StatusArrived {
		return errs.NewInvalidStateError("transit document is already confirmed arrived")
	}
	return d.setTrackingCodes(codes)
}

// MarkArrived records destination-hub confirmation.
func (d *Document) MarkArrived() error {
	if d.status == StatusArrived {
		return errs.NewInvalidStateError("transit document is already confirmed arrived")
	}
	d.status = StatusArrived
	return nil
}

func (d *Document) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Document) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("transit document code")
	}
	d.code = code
	return nil
}

func (d *Document) setHubs(originHubID, destHubID kernel.UUID, transitHubID *kernel.UUID) error {
	if err := originHubID.Validate(); err != nil {
		return err
	}
	if err := destHubID.Validate(); err != nil {
		return err
	}
	if originHubID.IsEqual(destHubID) {
		return errs.NewValueIsInvalidError("origin and destination hubs must differ")
	}
	if transitHubID != nil {
		if err := transitHubID.Validate(); err != nil {
			return err
		}
	}
	d.originHubID = originHubID
	d.destHubID = destHubID
	d.transitHubID = transitHubID
	return nil
}

func (d *Document) setTrackingCodes(codes []string) error {
	if len(codes) == 0 {
		return errs.NewValueIsRequiredError("tracking codes")
	}
	seen := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		if code == "" {
			return errs.NewValueIsRequiredError("tracking code")
		}
		if _, dup := seen[code]; dup {
			return errs.NewValueIsInvalidErrorWithCause("tracking codes",
				fmt.Errorf("%s is listed twice", code))
		}
		seen[code] = struct{}{}
	}
	d.trackingCodes = codes
	return nil
}

func (d *Document) setVehicle(vehicleID kernel.UUID) error {
	if err := vehicleID.Validate(); err != nil {
		return err
	}
	d.vehicleID = vehicleID
	return nil
}

func (d *Document) setDriver(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	d.driverID = driverID
	return nil
}
