package piecerepo

import (
	"context"
	"errors"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/piece"
	"cargo/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPieceRepository implements PieceRepository using GORM.
type GormPieceRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPieceRepository creates a new GORM piece repository.
func NewGormPieceRepository(db *gorm.DB, tracker aggregateTracker) *GormPieceRepository {
	return &GormPieceRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new piece to the database.
func (r *GormPieceRepository) Add(ctx context.Context, pc *piece.Piece) error {
	if err := pc.Validate(); err != nil {
		return err
	}

	dto := fromDomain(pc)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(pc.ID(), pc)
	return nil
}

// Update saves an existing piece to the database.
func (r *GormPieceRepository) Update(ctx context.Context, pc *piece.Piece) error {
	if err := pc.Validate(); err != nil {
		return err
	}

	dto := fromDomain(pc)
	result := r.db.WithContext(ctx).Model(&PieceDTO{}).Where("id = ?", dto.ID).
		Select("*").Omit("id").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(pc.ID(), pc)
	return nil
}

// Get retrieves a piece by ID.
func (r *GormPieceRepository) Get(ctx context.Context, id kernel.UUID) (*piece.Piece, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PieceDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("piece", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByCode retrieves a piece by its business code.
func (r *GormPieceRepository) GetByCode(ctx context.Context, code string) (*piece.Piece, error) {
	if code == "" {
		return nil, errs.NewValueIsRequiredError("piece code")
	}

	var dto PieceDTO
	if err := r.db.WithContext(ctx).First(&dto, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("piece", code)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllForOrder retrieves the full piece ledger of one order, ordered by
// business code.
func (r *GormPieceRepository) GetAllForOrder(ctx context.Context, orderID kernel.UUID) ([]*piece.Piece, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []PieceDTO
	err := r.db.WithContext(ctx).Order("code").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	pieces := make([]*piece.Piece, 0, len(dtos))
	for _, dto := range dtos {
		pc, pcErr := toDomain(dto)
		if pcErr != nil {
			return nil, pcErr
		}
		pieces = append(pieces, pc)
	}
	return pieces, nil
}

// Delete removes a piece by ID.
func (r *GormPieceRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&PieceDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("piece", id.String())
	}
	return nil
}

// MarkAllReceivedForOrders flips the inbound status of every piece of the
// given orders in one statement.
func (r *GormPieceRepository) MarkAllReceivedForOrders(ctx context.Context, orderIDs []kernel.UUID, hubID kernel.UUID) error {
	if len(orderIDs) == 0 {
		return nil
	}
	if err := hubID.Validate(); err != nil {
		return err
	}

	raw := make([]uuid.UUID, 0, len(orderIDs))
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return err
		}
		raw = append(raw, id.Bytes())
	}

	return r.db.WithContext(ctx).Model(&PieceDTO{}).
		Where("order_id IN ?", raw).
		Updates(map[string]any{
			"inbound":        int(piece.InboundReceived),
			"current_hub_id": hubID.Bytes(),
		}).Error
}
