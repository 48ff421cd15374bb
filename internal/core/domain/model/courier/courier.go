// Package courier contains the Courier entity: a driver who performs pickup
// and delivery tasks. Couriers carry the eligibility flags and workload
// counters consumed by the assignment balancer in the services package.
package courier

import (
	"errors"
	"time"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/pkg/errs"
)

// ErrCourierIsNotConstructed is returned when a Courier instance was not
// created through NewCourier or RestoreCourier.
var ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")

// Courier is a driver registered at a hub. Eligibility for assignment
// requires the driver to be active, online in the app, and not frozen on
// funds or GPS.
type Courier struct {
	id    kernel.UUID
	name  string
	hubID kernel.UUID

	active      bool
	appOnline   bool
	fundsFrozen bool
	gpsFrozen   bool

	lastAssignedAt time.Time
	openTaskCount  int
	location       kernel.GeoPoint

	isConstructed bool
}

// NewCourier registers a new active courier at a hub.
func NewCourier(id kernel.UUID, name string, hubID kernel.UUID, location kernel.GeoPoint) (*Courier, error) {
	c := &Courier{
		active:        true,
		appOnline:     false,
		location:      location,
		isConstructed: true,
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setHubID(hubID),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCourier reconstructs a courier from persistence.
func RestoreCourier(
	id kernel.UUID,
	name string,
	hubID kernel.UUID,
	active, appOnline, fundsFrozen, gpsFrozen bool,
	lastAssignedAt time.Time,
	openTaskCount int,
	location kernel.GeoPoint,
) (*Courier, error) {
	c := &Courier{
		active:         active,
		appOnline:      appOnline,
		fundsFrozen:    fundsFrozen,
		gpsFrozen:      gpsFrozen,
		lastAssignedAt: lastAssignedAt,
		openTaskCount:  openTaskCount,
		location:       location,
		isConstructed:  true,
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setHubID(hubID),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate ensures the Courier instance was properly constructed.
func (c *Courier) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCourierIsNotConstructed
	}
	return nil
}

// ID returns the courier identifier.
func (c *Courier) ID() kernel.UUID { return c.id }

// Name returns the courier's display name.
func (c *Courier) Name() string { return c.name }

// HubID returns the hub the courier is registered at.
func (c *Courier) HubID() kernel.UUID { return c.hubID }

// LastAssignedAt returns the time of the courier's most recent assignment.
func (c *Courier) LastAssignedAt() time.Time { return c.lastAssignedAt }

// OpenTaskCount returns the number of pickup/delivery tasks currently open.
func (c *Courier) OpenTaskCount() int { return c.openTaskCount }

// Location returns the courier's last known position.
func (c *Courier) Location() kernel.GeoPoint { return c.location }

// Active reports whether the courier is registered and not deactivated.
func (c *Courier) Active() bool { return c.active }

// AppOnline reports whether the courier is online in the driver app.
func (c *Courier) AppOnline() bool { return c.appOnline }

// FundsFrozen reports whether assignments are blocked on an unsettled balance.
func (c *Courier) FundsFrozen() bool { return c.fundsFrozen }

// GPSFrozen reports whether assignments are blocked on unreliable position data.
func (c *Courier) GPSFrozen() bool { return c.gpsFrozen }

// IsEligible reports whether the courier may receive assignments: active,
// online in the app, funds and GPS not frozen.
func (c *Courier) IsEligible() bool {
	return c.active && c.appOnline && !c.fundsFrozen && !c.gpsFrozen
}

// RecordAssignment bumps the workload counters after the courier receives a
// task.
func (c *Courier) RecordAssignment(at time.Time) {
	c.lastAssignedAt = at
	c.openTaskCount++
}

// CompleteTask decrements the open-task counter when a task finishes.
func (c *Courier) CompleteTask() {
	if c.openTaskCount > 0 {
		c.openTaskCount--
	}
}

// SetOnline toggles the app-online flag.
func (c *Courier) SetOnline(online bool) {
	c.appOnline = online
}

// Deactivate removes the courier from all assignment pools.
func (c *Courier) Deactivate() {
	c.active = false
}

// FreezeFunds blocks assignments until the courier's balance is settled.
func (c *Courier) FreezeFunds() {
	c.fundsFrozen = true
}

// FreezeGPS blocks assignments while the courier's position is unreliable.
func (c *Courier) FreezeGPS() {
	c.gpsFrozen = true
}

// MoveTo updates the courier's last known position.
func (c *Courier) MoveTo(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	c.location = location
	return nil
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("courier name")
	}
	c.name = name
	return nil
}

func (c *Courier) setHubID(hubID kernel.UUID) error {
	if err := hubID.Validate(); err != nil {
		return err
	}
	c.hubID = hubID
	return nil
}
