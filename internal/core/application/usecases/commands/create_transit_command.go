package commands

import (
	"errors"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/pkg/guard"
)

var (
	ErrCreateTransitCommandIsNotConstructed = errors.New(
		"CreateTransitCommand must be created via NewCreateTransitCommand constructor",
	)
	ErrTrackingCodesAreRequired = errors.New("at least one tracking code is required")
)

// CreateTransitCommand opens a transit leg: a vehicle and driver carrying a
// set of orders from an origin hub towards a destination hub, optionally
// through an intermediate transit hub.
type CreateTransitCommand struct { //nolint:recvcheck //using for validation
	documentID    kernel.UUID
	originHubID   kernel.UUID
	destHubID     kernel.UUID
	transitHubID  *kernel.UUID
	trackingCodes []string
	vehicleID     kernel.UUID
	driverID      kernel.UUID
	typeTag       string
	actorID       kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateTransitCommand creates a transit creation command. transitHubID
// is nil for direct legs.
func NewCreateTransitCommand(
	documentID kernel.UUID,
	originHubID, destHubID kernel.UUID,
	transitHubID *kernel.UUID,
	trackingCodes []string,
	vehicleID, driverID kernel.UUID,
	typeTag string,
	actorID kernel.UUID,
) (CreateTransitCommand, error) {
	cmd := CreateTransitCommand{
		transitHubID: transitHubID,
		typeTag:      typeTag,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDocumentID(documentID),
		cmd.setHubs(originHubID, destHubID, transitHubID),
		cmd.setTrackingCodes(trackingCodes),
		cmd.setVehicleAndDriver(vehicleID, driverID),
		cmd.setActorID(actorID),
	); err != nil {
		return CreateTransitCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateTransitCommand) Validate() error {
	return c.guard.Validate(ErrCreateTransitCommandIsNotConstructed)
}

// DocumentID returns the identifier the new document will carry.
func (c CreateTransitCommand) DocumentID() kernel.UUID { return c.documentID }

// OriginHubID returns the hub the leg departs from.
func (c CreateTransitCommand) OriginHubID() kernel.UUID { return c.originHubID }

// DestHubID returns the leg's destination hub.
func (c CreateTransitCommand) DestHubID() kernel.UUID { return c.destHubID }

// TransitHubID returns the optional intermediate hub.
func (c CreateTransitCommand) TransitHubID() *kernel.UUID { return c.transitHubID }

// TrackingCodes returns the orders riding this leg.
func (c CreateTransitCommand) TrackingCodes() []string { return c.trackingCodes }

// VehicleID returns the assigned vehicle.
func (c CreateTransitCommand) VehicleID() kernel.UUID { return c.vehicleID }

// DriverID returns the assigned driver.
func (c CreateTransitCommand) DriverID() kernel.UUID { return c.driverID }

// TypeTag returns the free-form leg classification.
func (c CreateTransitCommand) TypeTag() string { return c.typeTag }

// ActorID returns the dispatcher creating the leg.
func (c CreateTransitCommand) ActorID() kernel.UUID { return c.actorID }

func (c *CreateTransitCommand) setDocumentID(documentID kernel.UUID) error {
	if err := documentID.Validate(); err != nil {
		return err
	}

	c.documentID = documentID
	return nil
}

func (c *CreateTransitCommand) setHubs(originHubID, destHubID kernel.UUID, transitHubID *kernel.UUID) error {
	if err := originHubID.Validate(); err != nil {
		return err
	}
	if err := destHubID.Validate(); err != nil {
		return err
	}
	if originHubID.IsEqual(destHubID) {
		return ErrSameHub
	}
	if transitHubID != nil {
		if err := transitHubID.Validate(); err != nil {
			return err
		}
	}

	c.originHubID = originHubID
	c.destHubID = destHubID
	return nil
}

func (c *CreateTransitCommand) setTrackingCodes(trackingCodes []string) error {
	if len(trackingCodes) == 0 {
		return ErrTrackingCodesAreRequired
	}

	c.trackingCodes = trackingCodes
	return nil
}

func (c *CreateTransitCommand) setVehicleAndDriver(vehicleID, driverID kernel.UUID) error {
	if err := vehicleID.Validate(); err != nil {
		return err
	}
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.vehicleID = vehicleID
	c.driverID = driverID
	return nil
}

func (c *CreateTransitCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
