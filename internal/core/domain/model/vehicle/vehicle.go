// Package vehicle contains the Vehicle entity assigned to transit legs.
package vehicle

import (
	"errors"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/pkg/errs"
)

// ErrVehicleIsNotConstructed is returned when a Vehicle instance was not
// created through NewVehicle or RestoreVehicle.
var ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle constructor")

// Vehicle is a truck/van available for hub-to-hub legs. A vehicle is marked
// in use while it carries an open transit document.
type Vehicle struct {
	id    kernel.UUID
	plate string
	inUse bool

	isConstructed bool
}

// NewVehicle registers a vehicle by plate.
func NewVehicle(id kernel.UUID, plate string) (*Vehicle, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if plate == "" {
		return nil, errs.NewValueIsRequiredError("vehicle plate")
	}

	return &Vehicle{id: id, plate: plate, isConstructed: true}, nil
}

// RestoreVehicle reconstructs a vehicle from persistence.
func RestoreVehicle(id kernel.UUID, plate string, inUse bool) (*Vehicle, error) {
	v, err := NewVehicle(id, plate)
	if err != nil {
		return nil, err
	}
	v.inUse = inUse
	return v, nil
}

// Validate ensures the Vehicle instance was properly constructed.
func (v *Vehicle) Validate() error {
	if v == nil || !v.isConstructed {
		return ErrVehicleIsNotConstructed
	}
	return nil
}

// ID returns the vehicle identifier.
func (v *Vehicle) ID() kernel.UUID { return v.id }

// Plate returns the registration plate.
func (v *Vehicle) Plate() string { return v.plate }

// InUse reports whether the vehicle carries an open transit document.
func (v *Vehicle) InUse() bool { return v.inUse }

// MarkInUse reserves the vehicle for a transit leg.
func (v *Vehicle) MarkInUse() error {
	if v.inUse {
		return errs.NewInvalidStateError("vehicle is already in use")
	}
	v.inUse = true
	return nil
}

// Release frees the vehicle after the leg completes.
func (v *Vehicle) Release() {
	v.inUse = false
}
