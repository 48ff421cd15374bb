package orderrepo

import (
	"context"
	"errors"
	"time"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/order"
	"cargo/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).
		Select("*").Omit("id", "created_at").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return r.restore(ctx, dto)
}

// GetForUpdate retrieves an order by ID and takes a row lock held until the
// surrounding transaction ends.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return r.restore(ctx, dto)
}

// GetByTrackingCode retrieves an order by its customer-facing code.
func (r *GormOrderRepository) GetByTrackingCode(ctx context.Context, trackingCode string) (*order.Order, error) {
	if trackingCode == "" {
		return nil, errs.NewValueIsRequiredError("tracking code")
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "tracking_code = ?", trackingCode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", trackingCode)
		}
		return nil, err
	}

	return r.restore(ctx, dto)
}

// GetAllDueForPickupRelease retrieves Draft orders whose pickup-ready time
// has passed.
func (r *GormOrderRepository) GetAllDueForPickupRelease(ctx context.Context, now time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "status = ? AND pickup_ready_at <= ?", int(order.Draft), now).Error
	if err != nil {
		return nil, err
	}

	return r.restoreAll(ctx, dtos)
}

// GetAllAwaitingPickupAssignment retrieves ReadyForPickup orders without a
// pickup courier.
func (r *GormOrderRepository) GetAllAwaitingPickupAssignment(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "status = ? AND pickup_courier_id IS NULL", int(order.ReadyForPickup)).Error
	if err != nil {
		return nil, err
	}

	return r.restoreAll(ctx, dtos)
}

// Delete removes an order and its dependent rows. The domain delete guard
// must have passed before this is called.
func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	raw := id.Bytes()
	db := r.db.WithContext(ctx)

	if err := db.Exec("DELETE FROM pieces WHERE order_id = ?", raw).Error; err != nil {
		return err
	}
	if err := db.Exec("DELETE FROM shipments WHERE order_id = ?", raw).Error; err != nil {
		return err
	}
	if err := db.Where("order_id = ?", raw).Delete(&HistoryDTO{}).Error; err != nil {
		return err
	}

	result := db.Delete(&OrderDTO{}, "id = ?", raw)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return nil
}

// NextOrderNo allocates the next order number from the locked counter row.
// The first allocation seeds the counter.
func (r *GormOrderRepository) NextOrderNo(ctx context.Context) (int64, error) {
	db := r.db.WithContext(ctx)

	var counter OrderNoCounterDTO
	err := db.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		First(&counter, "id = ?", 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		counter = OrderNoCounterDTO{ID: 1, Value: 1}
		if createErr := db.Create(&counter).Error; createErr != nil {
			return 0, createErr
		}
		return counter.Value, nil
	}
	if err != nil {
		return 0, err
	}

	counter.Value++
	if err := db.Model(&OrderNoCounterDTO{}).Where("id = ?", 1).
		Update("value", counter.Value).Error; err != nil {
		return 0, err
	}
	return counter.Value, nil
}

func (r *GormOrderRepository) restore(ctx context.Context, dto OrderDTO) (*order.Order, error) {
	pieceIDs, err := r.pieceIDsFor(ctx, dto.ID)
	if err != nil {
		return nil, err
	}
	return toDomain(dto, pieceIDs)
}

func (r *GormOrderRepository) restoreAll(ctx context.Context, dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := r.restore(ctx, dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *GormOrderRepository) pieceIDsFor(ctx context.Context, orderID uuid.UUID) ([]kernel.UUID, error) {
	var raw []uuid.UUID
	err := r.db.WithContext(ctx).Table("pieces").
		Where("order_id = ?", orderID).Order("code").Pluck("id", &raw).Error
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, b := range raw {
		id, idErr := kernel.UUIDFromBytes(b[:])
		if idErr != nil {
			return nil, idErr
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// GormOrderHistoryRepository implements OrderHistoryRepository using GORM.
// History rows are append-only; no tracker is involved.
type GormOrderHistoryRepository struct {
	db *gorm.DB
}

// NewGormOrderHistoryRepository creates a new GORM order history repository.
func NewGormOrderHistoryRepository(db *gorm.DB) *GormOrderHistoryRepository {
	return &GormOrderHistoryRepository{db: db}
}

// Add appends one audit-trail entry.
func (r *GormOrderHistoryRepository) Add(ctx context.Context, entry *order.HistoryEntry) error {
	dto := historyFromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetAllForOrder retrieves the audit trail of one order, oldest first.
func (r *GormOrderHistoryRepository) GetAllForOrder(ctx context.Context, orderID kernel.UUID) ([]*order.HistoryEntry, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []HistoryDTO
	err := r.db.WithContext(ctx).
		Order("created_at").Find(&dtos, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*order.HistoryEntry, 0, len(dtos))
	for _, dto := range dtos {
		entry, entryErr := historyToDomain(dto)
		if entryErr != nil {
			return nil, entryErr
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
