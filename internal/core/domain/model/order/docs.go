// Package order contains the Order aggregate root, its lifecycle Status and
// the order history audit trail. The canonical status is derived from piece
// stage flags by the status projector in the services package; this package
// owns the explicit transitions (Draft promotion, cancellation) and their
// guards.
package order
