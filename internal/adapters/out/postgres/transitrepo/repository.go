package transitrepo

import (
	"context"
	"errors"
	"time"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/transit"
	"cargo/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTransitRepository implements TransitRepository using GORM.
type GormTransitRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormTransitRepository creates a new GORM transit document repository.
func NewGormTransitRepository(db *gorm.DB, tracker aggregateTracker) *GormTransitRepository {
	return &GormTransitRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new transit document to the database.
func (r *GormTransitRepository) Add(ctx context.Context, doc *transit.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	dto := fromDomain(doc)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(doc.ID(), doc)
	return nil
}

// Update saves an existing transit document to the database.
func (r *GormTransitRepository) Update(ctx context.Context, doc *transit.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	dto := fromDomain(doc)
	result := r.db.WithContext(ctx).Model(&TransitDTO{}).Where("id = ?", dto.ID).
		Select("*").Omit("id", "created_at").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(doc.ID(), doc)
	return nil
}

// Get retrieves a transit document by ID.
func (r *GormTransitRepository) Get(ctx context.Context, id kernel.UUID) (*transit.Document, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TransitDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("transit document", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// NextSequenceForHubDate counts the documents already created for the
// destination hub on the given day and returns count+1. Concurrent callers
// can observe the same count; the unique index on the code column decides
// the winner.
func (r *GormTransitRepository) NextSequenceForHubDate(ctx context.Context, destHubID kernel.UUID, date time.Time) (int, error) {
	if err := destHubID.Validate(); err != nil {
		return 0, err
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var count int64
	err := r.db.WithContext(ctx).Model(&TransitDTO{}).
		Where("dest_hub_id = ? AND created_at >= ? AND created_at < ?", destHubID.Bytes(), dayStart, dayEnd).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count) + 1, nil
}
