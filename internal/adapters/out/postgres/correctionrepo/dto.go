// Package correctionrepo provides data transfer objects and mapping
// functions for correction requests.
package correctionrepo

import (
	"time"

	"cargo/internal/core/domain/model/correction"
	"cargo/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CorrectionDTO represents the database structure for persisting correction
// requests.
type CorrectionDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;index;not null"`
	PieceID uuid.UUID `gorm:"type:uuid;index;not null"`

	Weight float64 `gorm:"not null"`
	Length float64 `gorm:"not null"`
	Width  float64 `gorm:"not null"`
	Height float64 `gorm:"not null"`

	Status      int        `gorm:"index;not null"`
	RequestedBy uuid.UUID  `gorm:"type:uuid;not null"`
	DecidedBy   *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time  `gorm:"not null"`
}

// TableName specifies the database table name for correction requests.
func (CorrectionDTO) TableName() string {
	return "correction_requests"
}

// fromDomain converts a correction request to its database representation.
func fromDomain(req *correction.Request) CorrectionDTO {
	var decidedBy *uuid.UUID
	if id := req.DecidedBy(); id != nil {
		raw := id.Bytes()
		decidedBy = &raw
	}

	proposed := req.Proposed()
	return CorrectionDTO{
		ID:          req.ID().Bytes(),
		OrderID:     req.OrderID().Bytes(),
		PieceID:     req.PieceID().Bytes(),
		Weight:      proposed.Weight(),
		Length:      proposed.Length(),
		Width:       proposed.Width(),
		Height:      proposed.Height(),
		Status:      int(req.Status()),
		RequestedBy: req.RequestedBy().Bytes(),
		DecidedBy:   decidedBy,
		CreatedAt:   req.CreatedAt(),
	}
}

// toDomain converts a database DTO to a correction request using
// RestoreRequest.
func toDomain(dto CorrectionDTO) (*correction.Request, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	pieceID, err := kernel.UUIDFromBytes(dto.PieceID[:])
	if err != nil {
		return nil, err
	}
	requestedBy, err := kernel.UUIDFromBytes(dto.RequestedBy[:])
	if err != nil {
		return nil, err
	}

	var decidedBy *kernel.UUID
	if dto.DecidedBy != nil {
		deciderID, deciderErr := kernel.UUIDFromBytes((*dto.DecidedBy)[:])
		if deciderErr != nil {
			return nil, deciderErr
		}
		decidedBy = &deciderID
	}

	proposed, err := kernel.NewDimensions(dto.Weight, dto.Length, dto.Width, dto.Height)
	if err != nil {
		return nil, err
	}

	return correction.RestoreRequest(
		id, orderID, pieceID, proposed,
		correction.Status(dto.Status), requestedBy, decidedBy, dto.CreatedAt,
	)
}
