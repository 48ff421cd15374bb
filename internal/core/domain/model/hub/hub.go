// Package hub contains the Hub entity: a physical sorting/transfer facility
// node in the network. Hubs are reference data; nothing in the core mutates
// them beyond registration.
package hub

import (
	"errors"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/pkg/errs"
)

// ErrHubIsNotConstructed is returned when a Hub instance was not created
// through NewHub.
var ErrHubIsNotConstructed = errors.New("Hub must be created via NewHub constructor")

// Hub is a facility node. The short code participates in transit document
// codes, so it is required and immutable.
type Hub struct {
	id       kernel.UUID
	code     string
	name     string
	location kernel.GeoPoint

	isConstructed bool
}

// NewHub registers a hub with its short code and position.
func NewHub(id kernel.UUID, code, name string, location kernel.GeoPoint) (*Hub, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if code == "" {
		return nil, errs.NewValueIsRequiredError("hub code")
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("hub name")
	}

	return &Hub{
		id:            id,
		code:          code,
		name:          name,
		location:      location,
		isConstructed: true,
	}, nil
}

// Validate ensures the Hub instance was properly constructed.
func (h *Hub) Validate() error {
	if h == nil || !h.isConstructed {
		return ErrHubIsNotConstructed
	}
	return nil
}

// ID returns the hub identifier.
func (h *Hub) ID() kernel.UUID { return h.id }

// Code returns the short code used in transit document codes.
func (h *Hub) Code() string { return h.code }

// Name returns the display name.
func (h *Hub) Name() string { return h.name }

// Location returns the hub position.
func (h *Hub) Location() kernel.GeoPoint { return h.location }
