package correctionrepo

import (
	"context"
	"errors"

	"cargo/internal/core/domain/model/correction"
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCorrectionRepository implements CorrectionRepository using GORM.
type GormCorrectionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCorrectionRepository creates a new GORM correction repository.
func NewGormCorrectionRepository(db *gorm.DB, tracker aggregateTracker) *GormCorrectionRepository {
	return &GormCorrectionRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new correction request to the database.
func (r *GormCorrectionRepository) Add(ctx context.Context, req *correction.Request) error {
	if err := req.Validate(); err != nil {
		return err
	}

	dto := fromDomain(req)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(req.ID(), req)
	return nil
}

// Update saves a decision on an existing request to the database.
func (r *GormCorrectionRepository) Update(ctx context.Context, req *correction.Request) error {
	if err := req.Validate(); err != nil {
		return err
	}

	dto := fromDomain(req)
	result := r.db.WithContext(ctx).Model(&CorrectionDTO{}).Where("id = ?", dto.ID).
		Select("*").Omit("id", "created_at").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(req.ID(), req)
	return nil
}

// Get retrieves a correction request by ID.
func (r *GormCorrectionRepository) Get(ctx context.Context, id kernel.UUID) (*correction.Request, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CorrectionDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("correction request", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllPendingForOrder retrieves the undecided requests of one order,
// oldest first.
func (r *GormCorrectionRepository) GetAllPendingForOrder(ctx context.Context, orderID kernel.UUID) ([]*correction.Request, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []CorrectionDTO
	err := r.db.WithContext(ctx).Order("created_at").
		Find(&dtos, "order_id = ? AND status = ?", orderID.Bytes(), int(correction.StatusPending)).Error
	if err != nil {
		return nil, err
	}

	requests := make([]*correction.Request, 0, len(dtos))
	for _, dto := range dtos {
		req, reqErr := toDomain(dto)
		if reqErr != nil {
			return nil, reqErr
		}
		requests = append(requests, req)
	}
	return requests, nil
}
