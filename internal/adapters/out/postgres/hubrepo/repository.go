// Package hubrepo provides persistence for the hub directory and the
// vehicle fleet. Both are small reference tables; DTOs and repositories
// share this package.
package hubrepo

import (
	"context"
	"errors"

	"cargo/internal/core/domain/model/hub"
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/vehicle"
	"cargo/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HubDTO represents the database structure for persisting hubs.
type HubDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code string    `gorm:"type:varchar(16);uniqueIndex;not null"`
	Name string    `gorm:"type:varchar(255);not null"`
	Lat  float64   `gorm:"not null"`
	Lon  float64   `gorm:"not null"`
}

// TableName specifies the database table name for hubs.
func (HubDTO) TableName() string {
	return "hubs"
}

// VehicleDTO represents the database structure for persisting vehicles.
type VehicleDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Plate string    `gorm:"type:varchar(32);uniqueIndex;not null"`
	InUse bool      `gorm:"not null"`
}

// TableName specifies the database table name for vehicles.
func (VehicleDTO) TableName() string {
	return "vehicles"
}

func hubToDomain(dto HubDTO) (*hub.Hub, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	loc, err := kernel.NewGeoPoint(dto.Lat, dto.Lon)
	if err != nil {
		return nil, err
	}

	return hub.NewHub(id, dto.Code, dto.Name, loc)
}

// GormHubRepository implements HubRepository using GORM.
type GormHubRepository struct {
	db *gorm.DB
}

// NewGormHubRepository creates a new GORM hub repository.
func NewGormHubRepository(db *gorm.DB) *GormHubRepository {
	return &GormHubRepository{db: db}
}

// Get retrieves a hub by ID.
func (r *GormHubRepository) Get(ctx context.Context, id kernel.UUID) (*hub.Hub, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto HubDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("hub", id.String())
		}
		return nil, err
	}

	return hubToDomain(dto)
}

// GetByCode retrieves a hub by its short code.
func (r *GormHubRepository) GetByCode(ctx context.Context, code string) (*hub.Hub, error) {
	if code == "" {
		return nil, errs.NewValueIsRequiredError("hub code")
	}

	var dto HubDTO
	if err := r.db.WithContext(ctx).First(&dto, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("hub", code)
		}
		return nil, err
	}

	return hubToDomain(dto)
}

// GormVehicleRepository implements VehicleRepository using GORM.
type GormVehicleRepository struct {
	db *gorm.DB
}

// NewGormVehicleRepository creates a new GORM vehicle repository.
func NewGormVehicleRepository(db *gorm.DB) *GormVehicleRepository {
	return &GormVehicleRepository{db: db}
}

// Get retrieves a vehicle by ID.
func (r *GormVehicleRepository) Get(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto VehicleDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("vehicle", id.String())
		}
		return nil, err
	}

	vid, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return vehicle.RestoreVehicle(vid, dto.Plate, dto.InUse)
}

// Update persists the in-use flag of a vehicle.
func (r *GormVehicleRepository) Update(ctx context.Context, v *vehicle.Vehicle) error {
	if err := v.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&VehicleDTO{}).
		Where("id = ?", v.ID().Bytes()).
		Update("in_use", v.InUse())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
