// Package piecerepo provides data transfer objects and mapping functions for
// the piece ledger.
package piecerepo

import (
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/piece"

	"github.com/google/uuid"
)

// PieceDTO represents the database structure for persisting pieces. One row
// per physical package; the stage flag columns feed the order status
// projection.
type PieceDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code       string    `gorm:"type:varchar(32);uniqueIndex;not null"`
	OrderID    uuid.UUID `gorm:"type:uuid;index;not null"`
	ShipmentID uuid.UUID `gorm:"type:uuid;index;not null"`

	Weight float64 `gorm:"not null"`
	Length float64 `gorm:"not null"`
	Width  float64 `gorm:"not null"`
	Height float64 `gorm:"not null"`

	Reweighed bool `gorm:"not null"`
	PickedUp  bool `gorm:"not null"`
	Outbound  bool `gorm:"not null"`
	Inbound   int  `gorm:"not null"`
	Delivered bool `gorm:"not null"`

	CurrentHubID *uuid.UUID `gorm:"type:uuid"`
}

// TableName specifies the database table name for pieces.
func (PieceDTO) TableName() string {
	return "pieces"
}

// fromDomain converts a piece to its database representation.
func fromDomain(pc *piece.Piece) PieceDTO {
	var currentHubID *uuid.UUID
	if id := pc.CurrentHubID(); id != nil {
		raw := id.Bytes()
		currentHubID = &raw
	}

	dims := pc.Dimensions()
	return PieceDTO{
		ID:           pc.ID().Bytes(),
		Code:         pc.Code(),
		OrderID:      pc.OrderID().Bytes(),
		ShipmentID:   pc.ShipmentID().Bytes(),
		Weight:       dims.Weight(),
		Length:       dims.Length(),
		Width:        dims.Width(),
		Height:       dims.Height(),
		Reweighed:    pc.Reweighed(),
		PickedUp:     pc.PickedUp(),
		Outbound:     pc.Outbound(),
		Inbound:      int(pc.Inbound()),
		Delivered:    pc.Delivered(),
		CurrentHubID: currentHubID,
	}
}

// toDomain converts a database DTO to a piece using RestorePiece.
func toDomain(dto PieceDTO) (*piece.Piece, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	shipmentID, err := kernel.UUIDFromBytes(dto.ShipmentID[:])
	if err != nil {
		return nil, err
	}

	var currentHubID *kernel.UUID
	if dto.CurrentHubID != nil {
		hubID, hubErr := kernel.UUIDFromBytes((*dto.CurrentHubID)[:])
		if hubErr != nil {
			return nil, hubErr
		}
		currentHubID = &hubID
	}

	dims, err := kernel.NewDimensions(dto.Weight, dto.Length, dto.Width, dto.Height)
	if err != nil {
		return nil, err
	}

	return piece.RestorePiece(
		id, dto.Code, orderID, shipmentID, dims,
		dto.Reweighed, dto.PickedUp, dto.Outbound,
		piece.InboundStatus(dto.Inbound), dto.Delivered,
		currentHubID,
	)
}
