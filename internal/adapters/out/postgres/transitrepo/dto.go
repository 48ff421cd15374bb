// Package transitrepo provides data transfer objects and mapping functions
// for transit documents.
package transitrepo

import (
	"strings"
	"time"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/transit"

	"github.com/google/uuid"
)

// trackingCodeSeparator joins the bundled tracking codes into one column.
// Tracking codes never contain commas.
const trackingCodeSeparator = ","

// TransitDTO represents the database structure for persisting transit
// documents. The unique index on Code is the backstop for concurrent
// creations that computed the same per-day sequence.
type TransitDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code string    `gorm:"type:varchar(32);uniqueIndex;not null"`

	OriginHubID  uuid.UUID  `gorm:"type:uuid;index;not null"`
	DestHubID    uuid.UUID  `gorm:"type:uuid;index;not null"`
	TransitHubID *uuid.UUID `gorm:"type:uuid"`

	TrackingCodes string    `gorm:"type:text;not null"`
	VehicleID     uuid.UUID `gorm:"type:uuid;not null"`
	DriverID      uuid.UUID `gorm:"type:uuid;not null"`

	Status    int       `gorm:"not null"`
	TypeTag   string    `gorm:"type:varchar(32)"`
	CreatedAt time.Time `gorm:"index;not null"`
}

// TableName specifies the database table name for transit documents.
func (TransitDTO) TableName() string {
	return "transit_documents"
}

// fromDomain converts a transit document to its database representation.
func fromDomain(doc *transit.Document) TransitDTO {
	var transitHubID *uuid.UUID
	if id := doc.TransitHubID(); id != nil {
		raw := id.Bytes()
		transitHubID = &raw
	}

	return TransitDTO{
		ID:            doc.ID().Bytes(),
		Code:          doc.Code(),
		OriginHubID:   doc.OriginHubID().Bytes(),
		DestHubID:     doc.DestHubID().Bytes(),
		TransitHubID:  transitHubID,
		TrackingCodes: strings.Join(doc.TrackingCodes(), trackingCodeSeparator),
		VehicleID:     doc.VehicleID().Bytes(),
		DriverID:      doc.DriverID().Bytes(),
		Status:        int(doc.Status()),
		TypeTag:       doc.TypeTag(),
		CreatedAt:     doc.CreatedAt(),
	}
}

// toDomain converts a database DTO to a transit document using
// RestoreDocument.
func toDomain(dto TransitDTO) (*transit.Document, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	originHubID, err := kernel.UUIDFromBytes(dto.OriginHubID[:])
	if err != nil {
		return nil, err
	}
	destHubID, err := kernel.UUIDFromBytes(dto.DestHubID[:])
	if err != nil {
		return nil, err
	}
	vehicleID, err := kernel.UUIDFromBytes(dto.VehicleID[:])
	if err != nil {
		return nil, err
	}
	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}

	var transitHubID *kernel.UUID
	if dto.TransitHubID != nil {
		hubID, hubErr := kernel.UUIDFromBytes((*dto.TransitHubID)[:])
		if hubErr != nil {
			return nil, hubErr
		}
		transitHubID = &hubID
	}

	return transit.RestoreDocument(
		id, dto.Code,
		originHubID, destHubID, transitHubID,
		strings.Split(dto.TrackingCodes, trackingCodeSeparator),
		vehicleID, driverID,
		transit.Status(dto.Status), dto.TypeTag, dto.CreatedAt,
	)
}
