// Package courierrepo provides data transfer objects and mapping functions
// for courier persistence.
package courierrepo

import (
	"time"

	"cargo/internal/core/domain/model/courier"
	"cargo/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO represents the database structure for persisting couriers.
type CourierDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string    `gorm:"type:varchar(255);not null"`
	HubID uuid.UUID `gorm:"type:uuid;index;not null"`

	Active      bool `gorm:"index;not null"`
	AppOnline   bool `gorm:"not null"`
	FundsFrozen bool `gorm:"not null"`
	GPSFrozen   bool `gorm:"not null"`

	LastAssignedAt time.Time `gorm:"not null"`
	OpenTaskCount  int       `gorm:"not null"`
	Lat            float64   `gorm:"not null"`
	Lon            float64   `gorm:"not null"`
}

// TableName specifies the database table name for couriers.
func (CourierDTO) TableName() string {
	return "couriers"
}

// fromDomain converts a courier to its database representation.
func fromDomain(c *courier.Courier) CourierDTO {
	return CourierDTO{
		ID:             c.ID().Bytes(),
		Name:           c.Name(),
		HubID:          c.HubID().Bytes(),
		Active:         c.Active(),
		AppOnline:      c.AppOnline(),
		FundsFrozen:    c.FundsFrozen(),
		GPSFrozen:      c.GPSFrozen(),
		LastAssignedAt: c.LastAssignedAt(),
		OpenTaskCount:  c.OpenTaskCount(),
		Lat:            c.Location().Lat(),
		Lon:            c.Location().Lon(),
	}
}

// toDomain converts a database DTO to a courier using RestoreCourier.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	hubID, err := kernel.UUIDFromBytes(dto.HubID[:])
	if err != nil {
		return nil, err
	}

	loc, err := kernel.NewGeoPoint(dto.Lat, dto.Lon)
	if err != nil {
		return nil, err
	}

	return courier.RestoreCourier(
		id, dto.Name, hubID,
		dto.Active, dto.AppOnline, dto.FundsFrozen, dto.GPSFrozen,
		dto.LastAssignedAt, dto.OpenTaskCount, loc,
	)
}
