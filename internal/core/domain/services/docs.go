// Package services contains stateless domain services that operate across
// aggregates: the order status projector, the shipment consolidator and the
// courier assignment balancer. All three are pure over in-memory aggregates;
// command handlers load the inputs inside a unit of work and persist
// whatever the service reports as changed.
package services
