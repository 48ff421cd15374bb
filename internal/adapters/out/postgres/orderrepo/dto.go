// Package orderrepo provides data transfer objects and mapping functions for
// order persistence, including the order audit trail and the numeric order
// number counter.
package orderrepo

import (
	"time"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Piece ownership is not stored here; pieces point back by order_id and the
// repository collects their ids on load.
type OrderDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	No           int64     `gorm:"uniqueIndex;not null"`
	TrackingCode string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	Status       int       `gorm:"index;not null"`

	Reweighed      bool `gorm:"not null"`
	BypassReweigh  bool `gorm:"not null"`
	PaymentSettled bool `gorm:"not null"`

	SourceHubID  uuid.UUID  `gorm:"type:uuid;not null"`
	DestHubID    uuid.UUID  `gorm:"type:uuid;not null"`
	CurrentHubID *uuid.UUID `gorm:"type:uuid"`
	NextHubID    *uuid.UUID `gorm:"type:uuid"`

	PickupCourierID   *uuid.UUID `gorm:"type:uuid;index"`
	DeliveryCourierID *uuid.UUID `gorm:"type:uuid;index"`
	VendorID          *uuid.UUID `gorm:"type:uuid"`
	InvoiceID         *uuid.UUID `gorm:"type:uuid"`

	PickupReadyAt time.Time `gorm:"index;not null"`
	CreatedAt     time.Time `gorm:"not null"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// HistoryDTO represents one row of the order audit trail.
type HistoryDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Status    int       `gorm:"not null"`
	Remark    string    `gorm:"type:text"`
	ActorID   uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName specifies the database table name for order history entries.
func (HistoryDTO) TableName() string {
	return "order_histories"
}

// OrderNoCounterDTO is the single-row counter backing order number
// allocation. The row is locked for update inside the intake transaction.
type OrderNoCounterDTO struct {
	ID    int   `gorm:"primaryKey"`
	Value int64 `gorm:"not null"`
}

// TableName specifies the database table name for the order number counter.
func (OrderNoCounterDTO) TableName() string {
	return "order_no_counters"
}

func optionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalFromRaw(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// fromDomain converts an order domain aggregate to its database
// representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:                aggregate.ID().Bytes(),
		No:                aggregate.No(),
		TrackingCode:      aggregate.TrackingCode(),
		Status:            int(aggregate.Status()),
		Reweighed:         aggregate.Reweighed(),
		BypassReweigh:     aggregate.BypassReweigh(),
		PaymentSettled:    aggregate.PaymentSettled(),
		SourceHubID:       aggregate.SourceHubID().Bytes(),
		DestHubID:         aggregate.DestHubID().Bytes(),
		CurrentHubID:      optionalID(aggregate.CurrentHubID()),
		NextHubID:         optionalID(aggregate.NextHubID()),
		PickupCourierID:   optionalID(aggregate.PickupCourierID()),
		DeliveryCourierID: optionalID(aggregate.DeliveryCourierID()),
		VendorID:          optionalID(aggregate.VendorID()),
		InvoiceID:         optionalID(aggregate.InvoiceID()),
		PickupReadyAt:     aggregate.PickupReadyAt(),
		CreatedAt:         aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO plus the order's piece ids to an order
// domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO, pieceIDs []kernel.UUID) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	sourceHubID, err := kernel.UUIDFromBytes(dto.SourceHubID[:])
	if err != nil {
		return nil, err
	}
	destHubID, err := kernel.UUIDFromBytes(dto.DestHubID[:])
	if err != nil {
		return nil, err
	}

	currentHubID, err := optionalFromRaw(dto.CurrentHubID)
	if err != nil {
		return nil, err
	}
	nextHubID, err := optionalFromRaw(dto.NextHubID)
	if err != nil {
		return nil, err
	}
	pickupCourierID, err := optionalFromRaw(dto.PickupCourierID)
	if err != nil {
		return nil, err
	}
	deliveryCourierID, err := optionalFromRaw(dto.DeliveryCourierID)
	if err != nil {
		return nil, err
	}
	vendorID, err := optionalFromRaw(dto.VendorID)
	if err != nil {
		return nil, err
	}
	invoiceID, err := optionalFromRaw(dto.InvoiceID)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, dto.No, dto.TrackingCode, order.Status(dto.Status),
		sourceHubID, destHubID,
		currentHubID, nextHubID,
		pickupCourierID, deliveryCourierID,
		vendorID, invoiceID,
		dto.Reweighed, dto.BypassReweigh, dto.PaymentSettled,
		pieceIDs,
		dto.PickupReadyAt, dto.CreatedAt,
	)
}

// historyFromDomain converts an audit-trail entry to its database
// representation.
func historyFromDomain(entry *order.HistoryEntry) HistoryDTO {
	return HistoryDTO{
		ID:        entry.ID().Bytes(),
		OrderID:   entry.OrderID().Bytes(),
		Status:    int(entry.Status()),
		Remark:    entry.Remark(),
		ActorID:   entry.ActorID().Bytes(),
		CreatedAt: entry.CreatedAt(),
	}
}

// historyToDomain converts a history DTO back to the domain entry.
func historyToDomain(dto HistoryDTO) (*order.HistoryEntry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreHistoryEntry(id, orderID, order.Status(dto.Status), dto.Remark, actorID, dto.CreatedAt), nil
}
