// Package shipmentrepo provides data transfer objects and mapping functions
// for consolidation rows.
package shipmentrepo

import (
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO represents the database structure for persisting consolidation
// rows. The reweigh columns are all zero until a piece of the row has been
// reweighed.
type ShipmentDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;index;not null"`

	Weight float64 `gorm:"not null"`
	Length float64 `gorm:"not null"`
	Width  float64 `gorm:"not null"`
	Height float64 `gorm:"not null"`
	Qty    int     `gorm:"not null"`

	ReweighWeight float64 `gorm:"not null"`
	ReweighLength float64 `gorm:"not null"`
	ReweighWidth  float64 `gorm:"not null"`
	ReweighHeight float64 `gorm:"not null"`
	QtyReweigh    int     `gorm:"not null"`
}

// TableName specifies the database table name for consolidation rows.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// fromDomain converts a consolidation row to its database representation.
func fromDomain(row *shipment.Shipment) ShipmentDTO {
	dims := row.Dimensions()
	reweigh := row.ReweighDimensions()
	return ShipmentDTO{
		ID:            row.ID().Bytes(),
		OrderID:       row.OrderID().Bytes(),
		Weight:        dims.Weight(),
		Length:        dims.Length(),
		Width:         dims.Width(),
		Height:        dims.Height(),
		Qty:           row.Qty(),
		ReweighWeight: reweigh.Weight(),
		ReweighLength: reweigh.Length(),
		ReweighWidth:  reweigh.Width(),
		ReweighHeight: reweigh.Height(),
		QtyReweigh:    row.QtyReweigh(),
	}
}

// toDomain converts a database DTO to a consolidation row using
// RestoreShipment.
func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	dims, err := kernel.NewDimensions(dto.Weight, dto.Length, dto.Width, dto.Height)
	if err != nil {
		return nil, err
	}

	// An unpopulated reweigh set stays the zero value; NewDimensions would
	// reject it.
	var reweigh kernel.Dimensions
	if dto.ReweighWeight != 0 || dto.ReweighLength != 0 || dto.ReweighWidth != 0 || dto.ReweighHeight != 0 {
		reweigh, err = kernel.NewDimensions(dto.ReweighWeight, dto.ReweighLength, dto.ReweighWidth, dto.ReweighHeight)
		if err != nil {
			return nil, err
		}
	}

	return shipment.RestoreShipment(id, orderID, dims, dto.Qty, reweigh, dto.QtyReweigh)
}
